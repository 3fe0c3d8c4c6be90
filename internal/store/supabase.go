package store

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"fitcoach/internal/config"
	"fitcoach/internal/logger"
)

// SupabaseStore implements [Store] against the Supabase PostgREST API.
// Every table operation maps onto a single REST call using PostgREST's
// horizontal filtering syntax (column=eq.value).
//
// PostgREST has no "first match only" mode, so UpdateOne and DeleteOne
// affect every record matching the filter. Callers needing single-record
// semantics must filter on a unique column.
type SupabaseStore struct {
	client *resty.Client
	logger *logger.Logger
}

// NewSupabaseStore builds a REST client for the project's PostgREST
// endpoint. The service key is sent both as the apikey header and as a
// bearer token, matching the Supabase API contract.
func NewSupabaseStore(cfg config.Supabase, log *logger.Logger) *SupabaseStore {
	client := resty.New().
		SetBaseURL(strings.TrimRight(cfg.URL, "/") + "/rest/v1").
		SetHeader("apikey", cfg.Key).
		SetAuthToken(cfg.Key).
		SetHeader("Content-Type", "application/json").
		SetTimeout(cfg.Timeout)

	log.Debug().Str("func", "NewSupabaseStore").Msg("created supabase REST client")

	return &SupabaseStore{client: client, logger: log}
}

// InsertOne creates a new record via POST. A 409 Conflict from PostgREST
// signals a unique constraint rejection.
func (s *SupabaseStore) InsertOne(ctx context.Context, table string, record Record) error {
	log := logger.FromContext(ctx)

	resp, err := s.client.R().
		SetContext(ctx).
		SetHeader("Prefer", "return=minimal").
		SetBody(record).
		Post("/" + table)
	if err != nil {
		log.Err(err).Str("func", "*SupabaseStore.InsertOne").Str("table", table).Msg("error calling REST API")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	if resp.IsError() {
		log.Error().Str("func", "*SupabaseStore.InsertOne").Str("table", table).
			Int("status", resp.StatusCode()).Msg("REST API returned error status")

		if resp.StatusCode() == http.StatusConflict {
			return ErrConstraintViolation
		}
		return fmt.Errorf("%w: unexpected status %d", ErrExecutingQuery, resp.StatusCode())
	}

	return nil
}

// FindOne returns the first record matching the filter.
func (s *SupabaseStore) FindOne(ctx context.Context, table string, filter Filter) (Record, error) {
	records, err := s.FindAll(ctx, table, filter, WithLimit(1))
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, ErrNotFound
	}

	return records[0], nil
}

// FindAll returns every record matching the filter, honouring sort and
// limit options via the order and limit query parameters.
func (s *SupabaseStore) FindAll(ctx context.Context, table string, filter Filter, opts ...FindOption) ([]Record, error) {
	log := logger.FromContext(ctx)
	resolved := applyFindOptions(opts)

	request := s.client.R().SetContext(ctx)
	applyRESTFilter(request, filter)

	if resolved.sortField != "" {
		direction := "asc"
		if resolved.sortDescending {
			direction = "desc"
		}
		request.SetQueryParam("order", resolved.sortField+"."+direction)
	}
	if resolved.limit > 0 {
		request.SetQueryParam("limit", strconv.FormatInt(resolved.limit, 10))
	}

	var records []Record
	resp, err := request.SetResult(&records).Get("/" + table)
	if err != nil {
		log.Err(err).Str("func", "*SupabaseStore.FindAll").Str("table", table).Msg("error calling REST API")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	if resp.IsError() {
		log.Error().Str("func", "*SupabaseStore.FindAll").Str("table", table).
			Int("status", resp.StatusCode()).Msg("REST API returned error status")
		return nil, fmt.Errorf("%w: unexpected status %d", ErrExecutingQuery, resp.StatusCode())
	}

	if records == nil {
		records = make([]Record, 0)
	}

	return records, nil
}

// UpdateOne applies the update via PATCH and reports how many records
// were affected. Affected records are counted from the representation
// PostgREST returns.
func (s *SupabaseStore) UpdateOne(ctx context.Context, table string, filter Filter, update Record) (int64, error) {
	log := logger.FromContext(ctx)

	request := s.client.R().
		SetContext(ctx).
		SetHeader("Prefer", "return=representation").
		SetBody(update)
	applyRESTFilter(request, filter)

	var updated []Record
	resp, err := request.SetResult(&updated).Patch("/" + table)
	if err != nil {
		log.Err(err).Str("func", "*SupabaseStore.UpdateOne").Str("table", table).Msg("error calling REST API")
		return 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	if resp.IsError() {
		log.Error().Str("func", "*SupabaseStore.UpdateOne").Str("table", table).
			Int("status", resp.StatusCode()).Msg("REST API returned error status")

		if resp.StatusCode() == http.StatusConflict {
			return 0, ErrConstraintViolation
		}
		return 0, fmt.Errorf("%w: unexpected status %d", ErrExecutingQuery, resp.StatusCode())
	}

	return int64(len(updated)), nil
}

// DeleteOne removes matching records via DELETE and reports how many were
// affected.
func (s *SupabaseStore) DeleteOne(ctx context.Context, table string, filter Filter) (int64, error) {
	log := logger.FromContext(ctx)

	request := s.client.R().
		SetContext(ctx).
		SetHeader("Prefer", "return=representation")
	applyRESTFilter(request, filter)

	var deleted []Record
	resp, err := request.SetResult(&deleted).Delete("/" + table)
	if err != nil {
		log.Err(err).Str("func", "*SupabaseStore.DeleteOne").Str("table", table).Msg("error calling REST API")
		return 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	if resp.IsError() {
		log.Error().Str("func", "*SupabaseStore.DeleteOne").Str("table", table).
			Int("status", resp.StatusCode()).Msg("REST API returned error status")
		return 0, fmt.Errorf("%w: unexpected status %d", ErrExecutingQuery, resp.StatusCode())
	}

	return int64(len(deleted)), nil
}

// Count asks PostgREST for an exact count and parses it from the
// Content-Range header ("0-0/42" or "*/0").
func (s *SupabaseStore) Count(ctx context.Context, table string, filter Filter) (int64, error) {
	log := logger.FromContext(ctx)

	request := s.client.R().
		SetContext(ctx).
		SetHeader("Prefer", "count=exact").
		SetHeader("Range", "0-0").
		SetQueryParam("select", "*")
	applyRESTFilter(request, filter)

	resp, err := request.Get("/" + table)
	if err != nil {
		log.Err(err).Str("func", "*SupabaseStore.Count").Str("table", table).Msg("error calling REST API")
		return 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	if resp.IsError() {
		log.Error().Str("func", "*SupabaseStore.Count").Str("table", table).
			Int("status", resp.StatusCode()).Msg("REST API returned error status")
		return 0, fmt.Errorf("%w: unexpected status %d", ErrExecutingQuery, resp.StatusCode())
	}

	contentRange := resp.Header().Get("Content-Range")
	slash := strings.LastIndex(contentRange, "/")
	if slash < 0 {
		return 0, fmt.Errorf("%w: missing Content-Range header", ErrExecutingQuery)
	}

	count, err := strconv.ParseInt(contentRange[slash+1:], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: malformed Content-Range %q", ErrExecutingQuery, contentRange)
	}

	return count, nil
}

// Ping issues a lightweight request against the API root to verify the
// endpoint is reachable and the key is accepted.
func (s *SupabaseStore) Ping(ctx context.Context) error {
	resp, err := s.client.R().SetContext(ctx).Get("/")
	if err != nil {
		return fmt.Errorf("supabase ping: %w", err)
	}
	if resp.StatusCode() >= http.StatusInternalServerError {
		return fmt.Errorf("supabase ping: unexpected status %d", resp.StatusCode())
	}

	return nil
}

// Close is a no-op; the REST client holds no persistent connections worth
// tearing down explicitly.
func (s *SupabaseStore) Close(_ context.Context) error {
	return nil
}

// applyRESTFilter translates an equality filter into PostgREST horizontal
// filtering query parameters.
func applyRESTFilter(request *resty.Request, filter Filter) {
	for field, value := range filter {
		if value == nil {
			request.SetQueryParam(field, "is.null")
			continue
		}
		request.SetQueryParam(field, "eq."+restValue(value))
	}
}

func restValue(value any) string {
	switch typed := value.(type) {
	case string:
		return typed
	case bool:
		return strconv.FormatBool(typed)
	case time.Time:
		return typed.Format(time.RFC3339Nano)
	default:
		return fmt.Sprint(typed)
	}
}
