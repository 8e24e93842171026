package repository

import (
	"context"
	"database/sql"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"maritime-ai-server/internal/domain"

	_ "modernc.org/sqlite"
)

// builtinPorts seeds the table on first run when no CSV is configured.
// Coordinates are approximate harbor positions.
var builtinPorts = []domain.Port{
	{Name: "Mumbai", Lat: 18.9398, Lon: 72.8355},
	{Name: "Deendayal", Lat: 23.0333, Lon: 70.2167},
	{Name: "Kochi", Lat: 9.9658, Lon: 76.2421},
	{Name: "Chennai", Lat: 13.0827, Lon: 80.2707},
	{Name: "Kolkata", Lat: 22.5726, Lon: 88.3639},
	{Name: "Visakhapatnam", Lat: 17.6868, Lon: 83.2185},
	{Name: "Singapore", Lat: 1.2644, Lon: 103.8222},
	{Name: "Rotterdam", Lat: 51.9225, Lon: 4.4792},
	{Name: "Shanghai", Lat: 31.2304, Lon: 121.4737},
	{Name: "Dubai", Lat: 25.2048, Lon: 55.2708},
	{Name: "Jebel Ali", Lat: 25.0115, Lon: 55.0618},
	{Name: "Abu Dhabi", Lat: 24.4539, Lon: 54.3773},
	{Name: "New York Harbor", Lat: 40.6681, Lon: -74.0442},
	{Name: "Hamburg", Lat: 53.5461, Lon: 9.9661},
	{Name: "Antwerp", Lat: 51.2485, Lon: 4.4208},
}

// PortRepository keeps known port coordinates in a local SQLite table so
// common lookups never leave the process.
type PortRepository struct {
	db     *sql.DB
	logger domain.Logger
}

// NewPortRepository opens (or creates) the port database at dbPath and
// seeds it on first run, from csvPath when given, otherwise from the
// built-in list.
func NewPortRepository(dbPath, csvPath string, logger domain.Logger) (*PortRepository, error) {
	if dir := filepath.Dir(dbPath); dir != "." && !strings.HasPrefix(dbPath, ":") {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create ports db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open ports db: %w", err)
	}
	// An in-memory database exists per connection, so pin the pool to a
	// single connection or every query would see an empty table.
	if strings.Contains(dbPath, ":memory:") || strings.Contains(dbPath, "mode=memory") {
		db.SetMaxOpenConns(1)
	}

	r := &PortRepository{db: db, logger: logger}
	if err := r.init(csvPath); err != nil {
		db.Close()
		return nil, err
	}
	return r, nil
}

func (r *PortRepository) init(csvPath string) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, err := r.db.Exec(pragma); err != nil {
			return fmt.Errorf("failed to apply pragma: %w", err)
		}
	}

	const schema = `CREATE TABLE IF NOT EXISTS ports (
		normalized TEXT PRIMARY KEY,
		name       TEXT NOT NULL,
		lat        REAL NOT NULL,
		lon        REAL NOT NULL
	)`
	if _, err := r.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create ports table: %w", err)
	}

	var count int
	if err := r.db.QueryRow("SELECT COUNT(*) FROM ports").Scan(&count); err != nil {
		return fmt.Errorf("failed to count ports: %w", err)
	}
	if count > 0 {
		return nil
	}

	if csvPath != "" {
		return r.seedFromCSV(csvPath)
	}
	return r.seed(builtinPorts)
}

// seedFromCSV loads semicolon-separated rows shaped Name;Coordinates,
// where Coordinates is a "lat, lon" pair. Rows that do not fit (headers,
// short rows, unparseable pairs) are skipped rather than failing the seed.
func (r *PortRepository) seedFromCSV(csvPath string) error {
	f, err := os.Open(csvPath)
	if err != nil {
		return fmt.Errorf("failed to open ports csv: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.Comma = ';'
	reader.FieldsPerRecord = -1

	var ports []domain.Port
	skipped := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read ports csv: %w", err)
		}
		if len(record) < 2 {
			skipped++
			continue
		}

		name := strings.TrimSpace(record[0])
		lat, lon, err := parseCoordinates(record[1])
		if name == "" || err != nil {
			skipped++
			continue
		}

		ports = append(ports, domain.Port{Name: name, Lat: lat, Lon: lon})
	}

	if len(ports) == 0 {
		return errors.New("ports csv contained no usable rows")
	}
	if skipped > 0 {
		r.logger.Warn("Skipped unusable ports csv rows", "skipped", skipped)
	}
	return r.seed(ports)
}

// parseCoordinates splits a "lat, lon" pair.
func parseCoordinates(s string) (float64, float64, error) {
	parts := strings.SplitN(s, ",", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("coordinates %q are not a lat, lon pair", s)
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid latitude in %q: %w", s, err)
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid longitude in %q: %w", s, err)
	}
	return lat, lon, nil
}

func (r *PortRepository) seed(ports []domain.Port) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin seed transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare("INSERT OR REPLACE INTO ports(normalized, name, lat, lon) VALUES(?, ?, ?, ?)")
	if err != nil {
		return fmt.Errorf("failed to prepare seed statement: %w", err)
	}
	defer stmt.Close()

	for _, p := range ports {
		if _, err := stmt.Exec(domain.NormalizePortName(p.Name), p.Name, p.Lat, p.Lon); err != nil {
			return fmt.Errorf("failed to seed port %q: %w", p.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit seed transaction: %w", err)
	}

	r.logger.Info("Seeded port table", "count", len(ports))
	return nil
}

// FindByNormalized looks up a port by its normalized name.
func (r *PortRepository) FindByNormalized(ctx context.Context, normalized string) (*domain.Port, error) {
	var port domain.Port
	err := r.db.QueryRowContext(ctx,
		"SELECT name, lat, lon FROM ports WHERE normalized = ?", normalized,
	).Scan(&port.Name, &port.Lat, &port.Lon)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrPortNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query port: %w", err)
	}
	return &port, nil
}

// Save upserts a resolved port so the next lookup is local.
func (r *PortRepository) Save(ctx context.Context, port *domain.Port) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT OR REPLACE INTO ports(normalized, name, lat, lon) VALUES(?, ?, ?, ?)",
		domain.NormalizePortName(port.Name), port.Name, port.Lat, port.Lon,
	)
	if err != nil {
		return fmt.Errorf("failed to save port: %w", err)
	}
	return nil
}

// Close closes the underlying database.
func (r *PortRepository) Close() error {
	return r.db.Close()
}
