package sqlengine

import (
	"context"
	"database/sql"
	"errors"
	"slices"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"

	"github.com/heliosip/countryrules/rulestore"
	"github.com/heliosip/countryrules/rulestore/sqlengine/internal/adapters"
)

const (
	// DialectPostgres builds statements with $n placeholders and double-quoted identifiers.
	DialectPostgres = "postgres"

	// DialectSQLite builds statements with ? placeholders for local rule databases.
	DialectSQLite = "sqlite3"
)

const (
	operationLoadSnapshot          = "load_snapshot"
	operationJurisdictions         = "jurisdictions"
	operationMatterTypes           = "matter_types"
	operationJurisdictionIDsByName = "jurisdiction_ids_by_name"
	operationMatterTypeIDsByName   = "matter_type_ids_by_name"
)

const (
	logMsgBuildSelectQueryFailed = "failed to build select query"
	logMsgDBQueryFailed          = "database query execution failed"
	logMsgRowIterationFailed     = "database row iteration failed"
	logMsgCloseRowsFailed        = "failed to close database rows"
	logMsgScanRowFailed          = "failed to scan database row"
	logMsgSQLExecuted            = "executed sql for: "
	logMsgOperation              = "rulestore operation: "
	logAttrError                 = "error"
	logAttrQuery                 = "query"
	logAttrTable                 = "table"
	logAttrRowCount              = "row_count"
	logAttrDurationMS            = "duration_ms"
)

// RuleStore reads the rule database. It is safe for concurrent use as long as the underlying pool is.
type RuleStore struct {
	db               adapters.DBAdapter
	tables           TableNames
	dialectName      string
	builder          goqu.DialectWrapper
	logger           rulestore.Logger
	contextualLogger rulestore.ContextualLogger
	metricsCollector rulestore.MetricsCollector
	tracingCollector rulestore.TracingCollector
}

// NewRuleStoreFromPGXPool creates a new RuleStore using a pgx Pool with optional configuration.
func NewRuleStoreFromPGXPool(db *pgxpool.Pool, options ...Option) (RuleStore, error) {
	if db == nil {
		return RuleStore{}, rulestore.ErrNilDatabaseConnection
	}

	return newRuleStore(adapters.NewPGXAdapter(db), options...)
}

// NewRuleStoreFromSQLDB creates a new RuleStore using a sql.DB with optional configuration.
func NewRuleStoreFromSQLDB(db *sql.DB, options ...Option) (RuleStore, error) {
	if db == nil {
		return RuleStore{}, rulestore.ErrNilDatabaseConnection
	}

	return newRuleStore(adapters.NewSQLAdapter(db), options...)
}

// NewRuleStoreFromSQLX creates a new RuleStore using a sqlx.DB with optional configuration.
func NewRuleStoreFromSQLX(db *sqlx.DB, options ...Option) (RuleStore, error) {
	if db == nil {
		return RuleStore{}, rulestore.ErrNilDatabaseConnection
	}

	return newRuleStore(adapters.NewSQLXAdapter(db), options...)
}

func newRuleStore(db adapters.DBAdapter, options ...Option) (RuleStore, error) {
	rs := RuleStore{
		db:          db,
		tables:      DefaultTableNames(),
		dialectName: DialectPostgres,
	}

	for _, option := range options {
		if err := option(&rs); err != nil {
			return RuleStore{}, err
		}
	}

	rs.builder = goqu.Dialect(rs.dialectName)

	return rs, nil
}

// Dialect returns the SQL dialect statements are built for.
func (rs RuleStore) Dialect() string {
	return rs.dialectName
}

// LoadSnapshot reads the complete input of one request: active rules, outcome and condition links,
// and the non-dirty jurisdiction and matter-type master rows. It is all-or-nothing: any failure
// returns an error joined with rulestore.ErrDataAccess and no partial snapshot.
func (rs RuleStore) LoadSnapshot(ctx context.Context) (rulestore.Snapshot, error) {
	var snapshot rulestore.Snapshot

	err := rs.observe(ctx, operationLoadSnapshot, func(ctx context.Context) (int, error) {
		rules, err := selectAll(ctx, rs, rs.tables.Rules, rs.selectRules(), scanRule)
		if err != nil {
			return 0, err
		}

		outcomes, err := selectAll(ctx, rs, rs.tables.Outcomes, rs.selectOutcomes(), scanOutcome)
		if err != nil {
			return 0, err
		}

		conditions, err := selectAll(ctx, rs, rs.tables.Conditions, rs.selectConditions(), scanCondition)
		if err != nil {
			return 0, err
		}

		jurisdictions, err := selectAll(ctx, rs, rs.tables.Jurisdictions, rs.selectJurisdictions(), scanJurisdiction)
		if err != nil {
			return 0, err
		}

		matterTypes, err := selectAll(ctx, rs, rs.tables.MatterTypes, rs.selectMatterTypes(), scanMatterType)
		if err != nil {
			return 0, err
		}

		snapshot = rulestore.Snapshot{
			Rules:         rules,
			Outcomes:      outcomes,
			Conditions:    conditions,
			Jurisdictions: jurisdictions,
			MatterTypes:   matterTypes,
		}

		return len(rules) + len(outcomes) + len(conditions) + len(jurisdictions) + len(matterTypes), nil
	})
	if err != nil {
		return rulestore.Snapshot{}, err
	}

	return snapshot, nil
}

// Jurisdictions returns the non-dirty jurisdictions, United States, European Patent Office and WIPO
// first, then alphabetically by name.
func (rs RuleStore) Jurisdictions(ctx context.Context) ([]rulestore.Jurisdiction, error) {
	var jurisdictions []rulestore.Jurisdiction

	err := rs.observe(ctx, operationJurisdictions, func(ctx context.Context) (int, error) {
		var err error
		jurisdictions, err = selectAll(ctx, rs, rs.tables.Jurisdictions, rs.selectJurisdictions(), scanJurisdiction)
		if err != nil {
			return 0, err
		}

		slices.SortStableFunc(jurisdictions, compareJurisdictions)

		return len(jurisdictions), nil
	})
	if err != nil {
		return nil, err
	}

	return jurisdictions, nil
}

// MatterTypes returns the non-dirty matter types ordered by name.
func (rs RuleStore) MatterTypes(ctx context.Context) ([]rulestore.MatterType, error) {
	var matterTypes []rulestore.MatterType

	err := rs.observe(ctx, operationMatterTypes, func(ctx context.Context) (int, error) {
		var err error
		matterTypes, err = selectAll(ctx, rs, rs.tables.MatterTypes, rs.selectMatterTypes(), scanMatterType)

		return len(matterTypes), err
	})
	if err != nil {
		return nil, err
	}

	return matterTypes, nil
}

// JurisdictionIDsByName returns the IDs of the non-dirty jurisdictions named exactly name.
// The name is bound as a statement parameter.
func (rs RuleStore) JurisdictionIDsByName(ctx context.Context, name string) ([]int64, error) {
	var ids []int64

	err := rs.observe(ctx, operationJurisdictionIDsByName, func(ctx context.Context) (int, error) {
		var err error
		ids, err = selectAll(ctx, rs, rs.tables.Jurisdictions, rs.selectIDsByName(rs.tables.Jurisdictions, colName, name), scanMasterID)

		return len(ids), err
	})
	if err != nil {
		return nil, err
	}

	return ids, nil
}

// MatterTypeIDsByName returns the IDs of the non-dirty matter types named exactly name.
// The name is bound as a statement parameter.
func (rs RuleStore) MatterTypeIDsByName(ctx context.Context, name string) ([]int64, error) {
	var ids []int64

	err := rs.observe(ctx, operationMatterTypeIDsByName, func(ctx context.Context) (int, error) {
		var err error
		ids, err = selectAll(ctx, rs, rs.tables.MatterTypes, rs.selectIDsByName(rs.tables.MatterTypes, colMatterTypeName, name), scanMasterID)

		return len(ids), err
	})
	if err != nil {
		return nil, err
	}

	return ids, nil
}

// rowScanner scans the current row. keep is false for rows that are read but not part of the result,
// e.g. inactive rules or dirty master rows.
type rowScanner[T any] func(rows adapters.DBRows) (item T, keep bool, err error)

// selectAll runs one prepared SELECT and scans all rows.
func selectAll[T any](
	ctx context.Context,
	rs RuleStore,
	table string,
	selectStmt *goqu.SelectDataset,
	scan rowScanner[T],
) ([]T, error) {

	sqlQuery, args, buildQueryErr := selectStmt.ToSQL()
	if buildQueryErr != nil {
		rs.logError(ctx, logMsgBuildSelectQueryFailed, buildQueryErr, logAttrTable, table)
		return nil, errors.Join(rulestore.ErrDataAccess, rulestore.ErrBuildingQueryFailed, buildQueryErr)
	}

	start := time.Now()
	rows, queryErr := rs.db.Query(ctx, sqlQuery, args...)
	rs.logQueryWithDuration(ctx, sqlQuery, table, time.Since(start))

	if queryErr != nil {
		rs.logError(ctx, logMsgDBQueryFailed, queryErr, logAttrQuery, sqlQuery)
		return nil, errors.Join(rulestore.ErrDataAccess, rulestore.ErrQueryingRulesFailed, queryErr)
	}
	defer rs.closeRows(ctx, rows)

	result := make([]T, 0)

	for rows.Next() {
		item, keep, scanErr := scan(rows)
		if scanErr != nil {
			rs.logError(ctx, logMsgScanRowFailed, scanErr, logAttrTable, table)
			return nil, errors.Join(rulestore.ErrDataAccess, rulestore.ErrScanningDBRowFailed, scanErr)
		}

		if keep {
			result = append(result, item)
		}
	}

	if iterErr := rows.Err(); iterErr != nil {
		rs.logError(ctx, logMsgRowIterationFailed, iterErr, logAttrTable, table)
		return nil, errors.Join(rulestore.ErrDataAccess, rulestore.ErrQueryingRulesFailed, iterErr)
	}

	return result, nil
}

// closeRows safely closes database rows and logs any errors.
func (rs RuleStore) closeRows(ctx context.Context, rows adapters.DBRows) {
	if closeErr := rows.Close(); closeErr != nil {
		rs.logWarn(ctx, logMsgCloseRowsFailed, closeErr)
	}
}

var jurisdictionPriority = map[string]int{
	"United States":          1,
	"European Patent Office": 2,
	"WIPO":                   3,
}

func compareJurisdictions(a, b rulestore.Jurisdiction) int {
	return priorityOf(a.Name) - priorityOf(b.Name)
}

func priorityOf(name string) int {
	if p, ok := jurisdictionPriority[name]; ok {
		return p
	}

	return len(jurisdictionPriority) + 1
}
