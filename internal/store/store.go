package store

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/fintrackr/statement-extractor/internal/logger"
	"github.com/fintrackr/statement-extractor/internal/models"
)

const schema = `
CREATE TABLE IF NOT EXISTS card_statements (
	id                     INTEGER PRIMARY KEY AUTOINCREMENT,
	user_id                TEXT NOT NULL,
	holder_name            TEXT,
	address                TEXT,
	card_product_name      TEXT,
	masked_card_number     TEXT,
	credit_limit           TEXT,
	available_credit_limit TEXT,
	available_cash_limit   TEXT,
	total_payment_due      TEXT,
	min_payment_due        TEXT,
	statement_period       TEXT,
	period_start           TEXT,
	period_end             TEXT,
	payment_due_date       TEXT,
	statement_date         TEXT,
	created_at             TEXT NOT NULL DEFAULT (datetime('now'))
);

CREATE TABLE IF NOT EXISTS card_statement_transactions (
	id           INTEGER PRIMARY KEY AUTOINCREMENT,
	statement_id INTEGER NOT NULL REFERENCES card_statements(id) ON DELETE CASCADE,
	seq          INTEGER NOT NULL,
	txn_date     TEXT,
	details      TEXT,
	name         TEXT,
	category     TEXT,
	amount       TEXT
);

CREATE INDEX IF NOT EXISTS idx_statement_txns_statement
	ON card_statement_transactions(statement_id);
`

// Store is the persistence collaborator: it owns the schema and assigns
// statement identity. The extraction core never generates ids.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the SQLite database and ensures the schema.
func Open(path string) (*Store, error) {
	dsn := fmt.Sprintf("%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(on)", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database at %s: %w", path, err)
	}

	// One connection avoids SQLite locking issues under concurrent uploads.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	logger.L.Info("database ready", "path", path)
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// SaveStatement inserts the statement row and its transaction rows in one
// transaction and returns the generated statement id. periodStart and
// periodEnd are the ISO dates decomposed from the raw statement period at
// the HTTP layer.
func (s *Store) SaveStatement(ctx context.Context, userID string, res models.StatementResult, periodStart, periodEnd string) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, `
		INSERT INTO card_statements (
			user_id, holder_name, address, card_product_name, masked_card_number,
			credit_limit, available_credit_limit, available_cash_limit,
			total_payment_due, min_payment_due,
			statement_period, period_start, period_end,
			payment_due_date, statement_date
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		userID, res.HolderName, res.Address, res.CardProductName, res.MaskedCardNumber,
		res.CreditLimit, res.AvailableCreditLimit, res.AvailableCashLimit,
		res.TotalPaymentDue, res.MinPaymentDue,
		res.StatementPeriod, periodStart, periodEnd,
		res.PaymentDueDate, res.StatementDate,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert statement: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read generated statement id: %w", err)
	}

	for i, txn := range res.Transactions {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO card_statement_transactions (
				statement_id, seq, txn_date, details, name, category, amount
			) VALUES (?, ?, ?, ?, ?, ?, ?)`,
			id, i, txn.Date, txn.Details, txn.Name, txn.Category, txn.Amount,
		); err != nil {
			return 0, fmt.Errorf("failed to insert transaction %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit statement: %w", err)
	}
	return id, nil
}

// CountTransactions returns the number of stored transaction rows for a
// statement.
func (s *Store) CountTransactions(ctx context.Context, statementID int64) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM card_statement_transactions WHERE statement_id = ?`,
		statementID,
	).Scan(&n)
	return n, err
}
