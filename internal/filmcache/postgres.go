package filmcache

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"cinetier/internal/film"
)

const postgresSchema = `
CREATE TABLE IF NOT EXISTS movies (
	tmdb_id           BIGINT PRIMARY KEY,
	title             TEXT NOT NULL,
	release_year      INTEGER NOT NULL DEFAULT 0,
	rating            DOUBLE PRECISION NOT NULL DEFAULT 0,
	genres            TEXT[] NOT NULL DEFAULT '{}',
	vote_count        INTEGER NOT NULL DEFAULT 0,
	directors         TEXT[] NOT NULL DEFAULT '{}',
	countries         TEXT[] NOT NULL DEFAULT '{}',
	original_language TEXT NOT NULL DEFAULT '',
	is_foreign        BOOLEAN NOT NULL DEFAULT FALSE,
	is_bw             BOOLEAN NOT NULL DEFAULT FALSE,
	is_silent         BOOLEAN NOT NULL DEFAULT FALSE,
	rarity_score      INTEGER NOT NULL DEFAULT 0,
	poster_path       TEXT NOT NULL DEFAULT '',
	cached_at         TIMESTAMPTZ NOT NULL DEFAULT now()
)`

const selectMovie = `SELECT tmdb_id, title, release_year, rating, genres, vote_count, directors, countries,
	original_language, is_foreign, is_bw, is_silent, rarity_score, poster_path
FROM movies WHERE tmdb_id = $1`

// upsertMovie refreshes only the fields that drift over time.
const upsertMovie = `INSERT INTO movies (
	tmdb_id, title, release_year, rating, genres, vote_count, directors, countries,
	original_language, is_foreign, is_bw, is_silent, rarity_score, poster_path
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
ON CONFLICT (tmdb_id) DO UPDATE SET
	rating = EXCLUDED.rating,
	vote_count = EXCLUDED.vote_count,
	rarity_score = EXCLUDED.rarity_score,
	cached_at = now()`

type pgxPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Close()
}

// PostgresStore keeps films in a movies table.
type PostgresStore struct {
	pool pgxPool
}

var _ Store = (*PostgresStore)(nil)

// OpenPostgres connects with dsn and makes sure the movies table exists.
func OpenPostgres(ctx context.Context, dsn string) (*PostgresStore, error) {
	if dsn == "" {
		return nil, errors.New("postgres dsn required")
	}
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	store := &PostgresStore{pool: pool}
	if err := store.ensureSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return store, nil
}

func (s *PostgresStore) ensureSchema(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, postgresSchema); err != nil {
		return fmt.Errorf("create movies table: %w", err)
	}
	return nil
}

func (s *PostgresStore) Name() string { return "postgres" }

func (s *PostgresStore) Get(ctx context.Context, id int64) (*film.Film, error) {
	var f film.Film
	err := s.pool.QueryRow(ctx, selectMovie, id).Scan(
		&f.TMDBID,
		&f.Title,
		&f.Year,
		&f.Rating,
		&f.Genres,
		&f.VoteCount,
		&f.Directors,
		&f.Countries,
		&f.OriginalLanguage,
		&f.IsForeignLanguage,
		&f.IsBlackAndWhite,
		&f.IsSilentEra,
		&f.RarityScore,
		&f.PosterPath,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("select movie %d: %w", id, err)
	}
	return &f, nil
}

func (s *PostgresStore) Put(ctx context.Context, f *film.Film) error {
	_, err := s.pool.Exec(ctx, upsertMovie,
		f.TMDBID,
		f.Title,
		f.Year,
		f.Rating,
		nonNil(f.Genres),
		f.VoteCount,
		nonNil(f.Directors),
		nonNil(f.Countries),
		f.OriginalLanguage,
		f.IsForeignLanguage,
		f.IsBlackAndWhite,
		f.IsSilentEra,
		f.RarityScore,
		f.PosterPath,
	)
	if err != nil {
		return fmt.Errorf("upsert movie %d: %w", f.TMDBID, err)
	}
	return nil
}

func (s *PostgresStore) Clear(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, "DELETE FROM movies"); err != nil {
		return fmt.Errorf("clear movies: %w", err)
	}
	return nil
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

func nonNil(in []string) []string {
	if in == nil {
		return []string{}
	}
	return in
}
