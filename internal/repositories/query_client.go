package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"gorm.io/gorm"

	"github.com/tropicaldog17/folio/internal/db"
	apperrors "github.com/tropicaldog17/folio/internal/errors"
)

// Params are named arguments of a stored procedure call.
type Params map[string]any

var identifier = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

// QueryClient is the remote query boundary: stored procedure calls and
// table reads against the portfolio database.
type QueryClient struct {
	db *db.DB
}

func NewQueryClient(database *db.DB) *QueryClient {
	return &QueryClient{db: database}
}

// callExpr renders fn(p_a => @p_a, p_b => @p_b) with parameters in name order.
func callExpr(fn string, params Params) (string, map[string]any, error) {
	if !identifier.MatchString(fn) {
		return "", nil, apperrors.Internal(fmt.Sprintf("invalid procedure name %q", fn), nil)
	}

	names := make([]string, 0, len(params))
	for name := range params {
		if !identifier.MatchString(name) {
			return "", nil, apperrors.Internal(fmt.Sprintf("invalid parameter name %q for %s", name, fn), nil)
		}
		names = append(names, name)
	}
	sort.Strings(names)

	args := make([]string, len(names))
	named := make(map[string]any, len(names))
	for i, name := range names {
		args[i] = name + " => @" + name
		named[name] = params[name]
	}
	return fn + "(" + strings.Join(args, ", ") + ")", named, nil
}

func (c *QueryClient) raw(ctx context.Context, query string, named map[string]any) *gorm.DB {
	tx := c.db.WithContext(ctx)
	if len(named) == 0 {
		return tx.Raw(query)
	}
	return tx.Raw(query, named)
}

// Call runs a set-returning procedure and scans its rows into dest,
// a pointer to a slice of row structs.
func (c *QueryClient) Call(ctx context.Context, fn string, params Params, dest any) error {
	expr, named, err := callExpr(fn, params)
	if err != nil {
		return err
	}
	if err := c.raw(ctx, "SELECT * FROM "+expr, named).Scan(dest).Error; err != nil {
		return upstream(fn, err)
	}
	return nil
}

// CallScalar runs a procedure returning a single value and scans it into dest.
func (c *QueryClient) CallScalar(ctx context.Context, fn string, params Params, dest any) error {
	expr, named, err := callExpr(fn, params)
	if err != nil {
		return err
	}
	row := c.raw(ctx, "SELECT "+expr, named).Row()
	if row == nil {
		return upstream(fn, errors.New("no row returned"))
	}
	if err := row.Scan(dest); err != nil {
		return upstream(fn, err)
	}
	return nil
}

// CallJSON runs a procedure returning json. A result object carrying a
// non-empty "error" field is a failure even though the call succeeded.
func (c *QueryClient) CallJSON(ctx context.Context, fn string, params Params) (json.RawMessage, error) {
	expr, named, err := callExpr(fn, params)
	if err != nil {
		return nil, err
	}
	var raw []byte
	row := c.raw(ctx, "SELECT "+expr+"::text", named).Row()
	if row == nil {
		return nil, upstream(fn, errors.New("no row returned"))
	}
	if err := row.Scan(&raw); err != nil {
		return nil, upstream(fn, err)
	}
	if len(raw) == 0 {
		return json.RawMessage("null"), nil
	}
	if msg := embeddedError(raw); msg != "" {
		return nil, upstream(fn, errors.New(msg))
	}
	return json.RawMessage(raw), nil
}

// CallRowsJSON runs a set-returning procedure and returns its rows as a json
// array without interpreting them.
func (c *QueryClient) CallRowsJSON(ctx context.Context, fn string, params Params) (json.RawMessage, error) {
	expr, named, err := callExpr(fn, params)
	if err != nil {
		return nil, err
	}
	var raw []byte
	query := "SELECT coalesce(json_agg(r), '[]'::json)::text FROM " + expr + " AS r"
	row := c.raw(ctx, query, named).Row()
	if row == nil {
		return nil, upstream(fn, errors.New("no row returned"))
	}
	if err := row.Scan(&raw); err != nil {
		return nil, upstream(fn, err)
	}
	return json.RawMessage(raw), nil
}

// CallExec runs a procedure for its side effects.
func (c *QueryClient) CallExec(ctx context.Context, fn string, params Params) error {
	expr, named, err := callExpr(fn, params)
	if err != nil {
		return err
	}
	tx := c.db.WithContext(ctx)
	if len(named) == 0 {
		err = tx.Exec("SELECT " + expr).Error
	} else {
		err = tx.Exec("SELECT "+expr, named).Error
	}
	if err != nil {
		return upstream(fn, err)
	}
	return nil
}

// From starts a table read. Callers compose Where/Order/Limit and finish with
// Find or First, passing the result through Done.
func (c *QueryClient) From(ctx context.Context, table string) (*gorm.DB, error) {
	if !identifier.MatchString(table) {
		return nil, apperrors.Internal(fmt.Sprintf("invalid table name %q", table), nil)
	}
	return c.db.WithContext(ctx).Table(table), nil
}

// Done classifies the error of a finished table read.
func Done(table string, tx *gorm.DB) error {
	if tx.Error == nil {
		return nil
	}
	if errors.Is(tx.Error, gorm.ErrRecordNotFound) {
		return apperrors.NotFound(table + " not found")
	}
	return upstream(table, tx.Error)
}

func upstream(name string, err error) error {
	return apperrors.Upstream(fmt.Sprintf("query %s failed", name), err)
}

func embeddedError(raw []byte) string {
	var probe struct {
		Error any `json:"error"`
	}
	if json.Unmarshal(raw, &probe) != nil || probe.Error == nil {
		return ""
	}
	switch v := probe.Error.(type) {
	case string:
		return v
	case bool:
		if v {
			return "procedure reported an error"
		}
		return ""
	default:
		b, _ := json.Marshal(v)
		return string(b)
	}
}
