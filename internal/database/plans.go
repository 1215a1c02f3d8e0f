package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/marcosvbalencar/portfolio-advisor/internal/models"
)

// SavePlan persists a rebalancing plan and its actions, returning the new
// plan ID
func (db *DB) SavePlan(clientID string, plan *models.RebalancingPlan) (int, error) {
	tx, err := db.conn.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var planID int
	err = tx.QueryRow(`
		INSERT INTO rebalancing_plans (
			client_id, rebalance_needed, current_equity_pct, target_equity_pct,
			total_sell_value, summary, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`, clientID, plan.RebalanceNeeded, plan.CurrentEquityPct, plan.TargetEquityPct,
		plan.TotalSellValue, plan.Summary, time.Now(),
	).Scan(&planID)
	if err != nil {
		return 0, fmt.Errorf("failed to insert plan: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO rebalancing_actions (
			plan_id, ordinal, ticker, action, size_pct, current_value,
			suggested_sell_value, rationale
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for i, a := range plan.Actions {
		_, err := stmt.Exec(planID, i, a.Ticker, string(a.Action), a.SizePct,
			a.CurrentValue, a.SuggestedSellValue, a.Rationale)
		if err != nil {
			return 0, fmt.Errorf("failed to insert action for %s: %w", a.Ticker, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return planID, nil
}

// GetLatestPlanByClient retrieves the most recent plan for a client,
// actions in stored order
func (db *DB) GetLatestPlanByClient(clientID string) (*models.RebalancingPlan, error) {
	var planID int
	var plan models.RebalancingPlan

	err := db.conn.QueryRow(`
		SELECT id, rebalance_needed, current_equity_pct, target_equity_pct,
		       total_sell_value, summary
		FROM rebalancing_plans
		WHERE client_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT 1
	`, clientID).Scan(&planID, &plan.RebalanceNeeded, &plan.CurrentEquityPct,
		&plan.TargetEquityPct, &plan.TotalSellValue, &plan.Summary)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("no plan found for client %s", clientID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get plan: %w", err)
	}

	rows, err := db.conn.Query(`
		SELECT ticker, action, size_pct, current_value, suggested_sell_value, rationale
		FROM rebalancing_actions
		WHERE plan_id = $1
		ORDER BY ordinal ASC
	`, planID)
	if err != nil {
		return nil, fmt.Errorf("failed to get plan actions: %w", err)
	}
	defer rows.Close()

	plan.Actions = []models.RebalancingAction{}
	for rows.Next() {
		var a models.RebalancingAction
		var action string
		err := rows.Scan(&a.Ticker, &action, &a.SizePct, &a.CurrentValue,
			&a.SuggestedSellValue, &a.Rationale)
		if err != nil {
			return nil, fmt.Errorf("failed to scan plan action: %w", err)
		}
		a.Action = models.ActionType(action)
		plan.Actions = append(plan.Actions, a)
	}

	return &plan, rows.Err()
}
