// Package aircraftdb provides the optional ICAO-24 -> registration/
// typecode lookup collaborator (spec §6.2), backed by an in-memory
// cache over a CSV dump of the public OpenSky/registration databases
// the rest of the example corpus loads this kind of reference data
// from.
package aircraftdb

import (
	"bufio"
	"encoding/csv"
	"io"
	"os"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/sirupsen/logrus"

	"jet1090go/internal/aggregator"
)

// Database is a cache.Cache-backed implementation of
// aggregator.AircraftDatabase. Entries never expire once loaded: the
// underlying CSV is a slow-moving reference dataset, not live traffic,
// so there is no eviction policy beyond a process restart.
type Database struct {
	cache  *cache.Cache
	logger *logrus.Logger
}

// New creates an empty Database. Load a CSV file into it with
// LoadCSV, or populate it at runtime with Put.
func New(logger *logrus.Logger) *Database {
	return &Database{
		cache:  cache.New(cache.NoExpiration, 10*time.Minute),
		logger: logger,
	}
}

// Put registers (or overwrites) one ICAO-24's entry.
func (d *Database) Put(icao24 string, entry aggregator.AircraftEntry) {
	d.cache.Set(strings.ToLower(icao24), entry, cache.NoExpiration)
}

// Lookup implements aggregator.AircraftDatabase.
func (d *Database) Lookup(icao24 string) (aggregator.AircraftEntry, bool) {
	v, ok := d.cache.Get(strings.ToLower(icao24))
	if !ok {
		return aggregator.AircraftEntry{}, false
	}
	return v.(aggregator.AircraftEntry), true
}

// Len reports how many entries are currently cached.
func (d *Database) Len() int {
	return d.cache.ItemCount()
}

// LoadCSV populates the database from a CSV file with header columns
// icao24,registration,typecode (case-insensitive, extra columns
// ignored). Malformed rows are logged and skipped rather than aborting
// the whole load.
func (d *Database) LoadCSV(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	r := csv.NewReader(bufio.NewReader(f))
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		if err == io.EOF {
			return nil
		}
		return err
	}
	col := make(map[string]int, len(header))
	for i, h := range header {
		col[strings.ToLower(strings.TrimSpace(h))] = i
	}
	icaoIdx, ok := col["icao24"]
	if !ok {
		return errMissingColumn("icao24")
	}
	regIdx := col["registration"]
	typeIdx := col["typecode"]

	loaded := 0
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			if d.logger != nil {
				d.logger.WithError(err).Warn("aircraftdb: skipping malformed CSV row")
			}
			continue
		}
		if icaoIdx >= len(record) {
			continue
		}
		icao := strings.ToLower(strings.TrimSpace(record[icaoIdx]))
		if icao == "" {
			continue
		}
		entry := aggregator.AircraftEntry{}
		if regIdx < len(record) {
			entry.Registration = strings.TrimSpace(record[regIdx])
		}
		if typeIdx < len(record) {
			entry.TypeCode = strings.TrimSpace(record[typeIdx])
		}
		d.Put(icao, entry)
		loaded++
	}

	if d.logger != nil {
		d.logger.WithFields(logrus.Fields{"path": path, "count": loaded}).Info("aircraftdb: loaded registration database")
	}
	return nil
}

type errMissingColumn string

func (e errMissingColumn) Error() string {
	return "aircraftdb: missing required CSV column " + string(e)
}
