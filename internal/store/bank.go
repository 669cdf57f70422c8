// Package store keeps decoded genomes and their parentage in SQLite so
// lineages survive between runs.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // register the pure Go sqlite driver

	"github.com/appengine-ltd/organa/internal/bits"
	"github.com/appengine-ltd/organa/internal/genome"
	"github.com/appengine-ltd/organa/internal/phenotype"
)

var ErrNotFound = errors.New("genome not found")

// Record is one banked genome. ParentID is empty for founders.
type Record struct {
	ID        string
	ParentID  string
	Genome    bits.Sequence
	Organs    int
	Genes     int
	CreatedAt time.Time
}

// RecordFor captures a decoded organism, its reconstructed genome and its
// shape.
func RecordFor(org *phenotype.Organism, parentID string) Record {
	return Record{
		ID:        org.ID(),
		ParentID:  parentID,
		Genome:    genome.Reconstruct(org),
		Organs:    len(org.Organs()),
		Genes:     org.GeneCount(),
		CreatedAt: time.Now().UTC(),
	}
}

type Bank struct {
	db *sql.DB
}

// Open creates the schema if needed. path may be ":memory:".
func Open(ctx context.Context, path string) (*Bank, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// Each connection to ":memory:" is a separate database.
	db.SetMaxOpenConns(1)
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	_, err = db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS genomes(
			id TEXT PRIMARY KEY,
			parent_id TEXT NOT NULL DEFAULT '',
			genome BLOB NOT NULL,
			bits INTEGER NOT NULL,
			organs INTEGER NOT NULL,
			genes INTEGER NOT NULL,
			created_at INTEGER NOT NULL
		)`)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create genomes table: %w", err)
	}
	_, err = db.ExecContext(ctx, `CREATE INDEX IF NOT EXISTS genomes_parent ON genomes(parent_id)`)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create parent index: %w", err)
	}
	return &Bank{db: db}, nil
}

func (b *Bank) Close() error {
	return b.db.Close()
}

// Save inserts or replaces r. The genome is stored sentinel-packed so
// leading zeros survive.
func (b *Bank) Save(ctx context.Context, r Record) error {
	if r.ID == "" {
		return errors.New("record id is required")
	}
	blob, err := r.Genome.MarshalBinary()
	if err != nil {
		return fmt.Errorf("encode genome %s: %w", r.ID, err)
	}
	created := r.CreatedAt
	if created.IsZero() {
		created = time.Now().UTC()
	}
	_, err = b.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO genomes(id, parent_id, genome, bits, organs, genes, created_at) VALUES(?,?,?,?,?,?,?)`,
		r.ID, r.ParentID, blob, r.Genome.Len(), r.Organs, r.Genes, created.UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("save genome %s: %w", r.ID, err)
	}
	return nil
}

func (b *Bank) Get(ctx context.Context, id string) (Record, error) {
	row := b.db.QueryRowContext(ctx,
		`SELECT id, parent_id, genome, organs, genes, created_at FROM genomes WHERE id = ?`, id)
	r, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Record{}, fmt.Errorf("%s: %w", id, ErrNotFound)
	}
	if err != nil {
		return Record{}, fmt.Errorf("get genome %s: %w", id, err)
	}
	return r, nil
}

// Children lists the direct offspring of parentID, oldest first.
func (b *Bank) Children(ctx context.Context, parentID string) ([]Record, error) {
	rows, err := b.db.QueryContext(ctx,
		`SELECT id, parent_id, genome, organs, genes, created_at FROM genomes
		 WHERE parent_id = ? ORDER BY created_at, id`, parentID)
	if err != nil {
		return nil, fmt.Errorf("list children of %s: %w", parentID, err)
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		r, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("list children of %s: %w", parentID, err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// Lineage walks parent links from id back to its founder. The first record
// is id itself.
func (b *Bank) Lineage(ctx context.Context, id string) ([]Record, error) {
	var out []Record
	seen := make(map[string]bool)
	for id != "" && !seen[id] {
		seen[id] = true
		r, err := b.Get(ctx, id)
		if err != nil {
			return out, err
		}
		out = append(out, r)
		id = r.ParentID
	}
	return out, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(s scanner) (Record, error) {
	var (
		r       Record
		blob    []byte
		created int64
	)
	if err := s.Scan(&r.ID, &r.ParentID, &blob, &r.Organs, &r.Genes, &created); err != nil {
		return Record{}, err
	}
	if err := r.Genome.UnmarshalBinary(blob); err != nil {
		return Record{}, fmt.Errorf("decode genome %s: %w", r.ID, err)
	}
	r.CreatedAt = time.Unix(0, created).UTC()
	return r, nil
}
