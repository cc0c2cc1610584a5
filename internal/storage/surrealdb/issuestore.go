package surrealdb

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/surrealdb/surrealdb.go"
	surrealmodels "github.com/surrealdb/surrealdb.go/pkg/models"

	"treasuryd/internal/common"
	"treasuryd/internal/interfaces"
	"treasuryd/internal/models"
)

// issueSelectFields lists the fields selected from user_issue, aliasing
// issue_id to id for struct mapping.
const issueSelectFields = `issue_id AS id, issue, table_type AS tableType, user_info AS userInfo,
	status, created_at AS createdAt, updated_at AS updatedAt`

// IssueStore implements interfaces.IssueStore using SurrealDB.
type IssueStore struct {
	db     *surrealdb.DB
	logger *common.Logger
}

// NewIssueStore creates a new IssueStore.
func NewIssueStore(db *surrealdb.DB, logger *common.Logger) *IssueStore {
	return &IssueStore{db: db, logger: logger}
}

func (s *IssueStore) Create(ctx context.Context, issue *models.IssueReport) error {
	if issue.ID == "" {
		issue.ID = fmt.Sprintf("iss_%s", uuid.New().String()[:8])
	}
	now := time.Now()
	if issue.CreatedAt.IsZero() {
		issue.CreatedAt = now
	}
	issue.UpdatedAt = now
	if issue.Status == "" {
		issue.Status = models.IssueStatusPending
	}
	if issue.TableType == "" {
		issue.TableType = models.IssueTableUnknown
	}

	sql := `UPSERT $rid SET
		issue_id = $issue_id, issue = $issue, table_type = $table_type,
		user_info = $user_info, status = $status,
		created_at = $created_at, updated_at = $updated_at`
	vars := map[string]any{
		"rid":        surrealmodels.NewRecordID("user_issue", issue.ID),
		"issue_id":   issue.ID,
		"issue":      issue.Issue,
		"table_type": issue.TableType,
		"user_info":  issue.UserInfo,
		"status":     issue.Status,
		"created_at": issue.CreatedAt,
		"updated_at": issue.UpdatedAt,
	}

	if _, err := surrealdb.Query[any](ctx, s.db, sql, vars); err != nil {
		return fmt.Errorf("failed to create issue report: %w", err)
	}
	return nil
}

func (s *IssueStore) Get(ctx context.Context, id string) (*models.IssueReport, error) {
	sql := "SELECT " + issueSelectFields + " FROM $rid"
	vars := map[string]any{
		"rid": surrealmodels.NewRecordID("user_issue", id),
	}

	results, err := surrealdb.Query[[]models.IssueReport](ctx, s.db, sql, vars)
	if err != nil {
		if isNotFoundError(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get issue report: %w", err)
	}

	if results == nil || len(*results) == 0 || len((*results)[0].Result) == 0 {
		return nil, nil
	}
	return &(*results)[0].Result[0], nil
}

func (s *IssueStore) List(ctx context.Context, opts interfaces.IssueListOptions) ([]*models.IssueReport, int, error) {
	where := ""
	vars := map[string]any{}

	if opts.Status != "" {
		where += " AND status = $status"
		vars["status"] = opts.Status
	}
	if opts.TableType != "" {
		where += " AND table_type = $table_type"
		vars["table_type"] = opts.TableType
	}
	if opts.Since != nil {
		where += " AND created_at >= $since"
		vars["since"] = *opts.Since
	}

	whereClause := ""
	if where != "" {
		whereClause = " WHERE " + where[5:]
	}

	// issue_id as tiebreaker for deterministic ordering when timestamps are equal
	orderBy := "ORDER BY created_at DESC, issue_id DESC"

	countSQL := "SELECT count() AS cnt FROM user_issue" + whereClause + " GROUP ALL"
	type countResult struct {
		Cnt int `json:"cnt"`
	}
	total := 0
	countResults, err := surrealdb.Query[[]countResult](ctx, s.db, countSQL, vars)
	if err == nil && countResults != nil && len(*countResults) > 0 && len((*countResults)[0].Result) > 0 {
		total = (*countResults)[0].Result[0].Cnt
	}

	page := opts.Page
	if page < 1 {
		page = 1
	}
	perPage := opts.PerPage
	if perPage < 1 {
		perPage = 20
	}
	if perPage > 100 {
		perPage = 100
	}
	offset := (page - 1) * perPage

	dataSQL := "SELECT " + issueSelectFields + " FROM user_issue" + whereClause + " " + orderBy + " LIMIT $limit START $start"
	vars["limit"] = perPage
	vars["start"] = offset

	results, err := surrealdb.Query[[]models.IssueReport](ctx, s.db, dataSQL, vars)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list issue reports: %w", err)
	}

	items := make([]*models.IssueReport, 0)
	if results != nil && len(*results) > 0 {
		for i := range (*results)[0].Result {
			items = append(items, &(*results)[0].Result[i])
		}
	}

	return items, total, nil
}

func (s *IssueStore) UpdateStatus(ctx context.Context, id, status string) error {
	sql := "UPDATE $rid SET status = $status, updated_at = $now"
	vars := map[string]any{
		"rid":    surrealmodels.NewRecordID("user_issue", id),
		"status": status,
		"now":    time.Now(),
	}

	if _, err := surrealdb.Query[any](ctx, s.db, sql, vars); err != nil {
		return fmt.Errorf("failed to update issue report: %w", err)
	}
	return nil
}

// Compile-time check
var _ interfaces.IssueStore = (*IssueStore)(nil)
