package audit

import (
	"context"
	"database/sql"

	"github.com/radieske/match-predictor/pkg/contracts/events"
)

// PostgresRepo persiste os eventos de previsão e o agregado por confronto
type PostgresRepo struct {
	DB *sql.DB
}

func NewPostgresRepo(db *sql.DB) *PostgresRepo {
	return &PostgresRepo{DB: db}
}

// Migrate cria as tabelas se ainda não existirem
func (r *PostgresRepo) Migrate(ctx context.Context) error {
	const q = `
		CREATE TABLE IF NOT EXISTS prediction_events (
		  id               BIGSERIAL PRIMARY KEY,
		  session_id       TEXT NOT NULL,
		  home_team        TEXT NOT NULL,
		  away_team        TEXT NOT NULL,
		  home_win         DOUBLE PRECISION NOT NULL,
		  draw             DOUBLE PRECISION NOT NULL,
		  away_win         DOUBLE PRECISION NOT NULL,
		  predicted_result TEXT NOT NULL,
		  expected_score   TEXT NOT NULL,
		  source           TEXT NOT NULL,
		  ts               TIMESTAMPTZ NOT NULL
		);
		CREATE TABLE IF NOT EXISTS matchup_stats (
		  home_team   TEXT NOT NULL,
		  away_team   TEXT NOT NULL,
		  predictions BIGINT NOT NULL,
		  last_result TEXT NOT NULL,
		  updated_at  TIMESTAMPTZ NOT NULL,
		  PRIMARY KEY (home_team, away_team)
		);
	`
	_, err := r.DB.ExecContext(ctx, q)
	return err
}

// InsertEvent grava o evento bruto em prediction_events
func (r *PostgresRepo) InsertEvent(ctx context.Context, e events.PredictionMade) error {
	const q = `
		INSERT INTO prediction_events
		  (session_id, home_team, away_team, home_win, draw, away_win, predicted_result, expected_score, source, ts)
		VALUES
		  ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
	`
	_, err := r.DB.ExecContext(ctx, q,
		e.SessionID, e.HomeTeam, e.AwayTeam,
		e.Probabilities.HomeWin, e.Probabilities.Draw, e.Probabilities.AwayWin,
		e.PredictedResult, e.ExpectedScore, e.Source, e.Ts,
	)
	return err
}

// UpsertMatchup incrementa o contador do confronto e guarda o último resultado
func (r *PostgresRepo) UpsertMatchup(ctx context.Context, e events.PredictionMade) error {
	const q = `
		INSERT INTO matchup_stats
		  (home_team, away_team, predictions, last_result, updated_at)
		VALUES
		  ($1,$2,1,$3,$4)
		ON CONFLICT (home_team, away_team) DO UPDATE SET
		  predictions = matchup_stats.predictions + 1,
		  last_result = EXCLUDED.last_result,
		  updated_at  = EXCLUDED.updated_at
	`
	_, err := r.DB.ExecContext(ctx, q, e.HomeTeam, e.AwayTeam, e.PredictedResult, e.Ts)
	return err
}
