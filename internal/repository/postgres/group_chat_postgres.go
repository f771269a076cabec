package postgres

import (
	"context"
	"database/sql"

	"coparent/internal/model"
	"coparent/internal/repository"
)

// GroupChatPostgres is a PostgreSQL implementation of repository.GroupChatRepository.
type GroupChatPostgres struct {
	db *sql.DB
}

func NewGroupChatPostgres(db *sql.DB) *GroupChatPostgres {
	return &GroupChatPostgres{db: db}
}

var _ repository.GroupChatRepository = (*GroupChatPostgres)(nil)

const groupChatColumns = `id, family_id, contact_type, contact_id, group_identifier, created_by_user_id, created_at`

func scanGroupChat(row rowScanner) (*model.GroupChat, error) {
	var g model.GroupChat
	if err := row.Scan(&g.ID, &g.FamilyID, &g.ContactType, &g.ContactID, &g.GroupIdentifier, &g.CreatedBy, &g.CreatedAt); err != nil {
		return nil, err
	}
	return &g, nil
}

func (r *GroupChatPostgres) Find(ctx context.Context, familyID, contactType string, contactID int64) (*model.GroupChat, error) {
	q := `SELECT ` + groupChatColumns + ` FROM group_chats WHERE family_id = $1 AND contact_type = $2 AND contact_id = $3`
	g, err := scanGroupChat(r.db.QueryRowContext(ctx, q, familyID, contactType, contactID))
	if err != nil {
		return nil, translate(err)
	}
	return g, nil
}

func (r *GroupChatPostgres) Create(ctx context.Context, g *model.GroupChat) (*model.GroupChat, error) {
	q := `
		INSERT INTO group_chats (family_id, contact_type, contact_id, group_identifier, created_by_user_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + groupChatColumns
	out, err := scanGroupChat(r.db.QueryRowContext(ctx, q, g.FamilyID, g.ContactType, g.ContactID, g.GroupIdentifier, g.CreatedBy))
	if err != nil {
		return nil, translate(err)
	}
	return out, nil
}
