package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

const skillColumns = `id, name, category, proficiency_level, icon, description`

// SkillRepository handles database operations for skills.
type SkillRepository struct {
	db *sqlx.DB
}

// NewSkillRepository creates a new SkillRepository.
func NewSkillRepository(db *sqlx.DB) *SkillRepository {
	return &SkillRepository{db: db}
}

// List returns all skills grouped by category, strongest first.
func (r *SkillRepository) List(ctx context.Context) ([]Skill, error) {
	skills := []Skill{}
	query := "SELECT " + skillColumns + " FROM skills ORDER BY category, proficiency_level DESC, id"
	if err := r.db.SelectContext(ctx, &skills, query); err != nil {
		return nil, fmt.Errorf("failed to list skills: %w", err)
	}
	return skills, nil
}

// GetByID retrieves a skill by its ID.
func (r *SkillRepository) GetByID(ctx context.Context, id int64) (*Skill, error) {
	var s Skill
	query := "SELECT " + skillColumns + " FROM skills WHERE id = ?"
	if err := r.db.GetContext(ctx, &s, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get skill by id: %w", err)
	}
	return &s, nil
}

// Create inserts a skill and sets its generated ID.
func (r *SkillRepository) Create(ctx context.Context, s *Skill) error {
	query := `INSERT INTO skills (name, category, proficiency_level, icon, description)
		VALUES (:name, :category, :proficiency_level, :icon, :description)`
	result, err := r.db.NamedExecContext(ctx, query, s)
	if err != nil {
		return fmt.Errorf("failed to insert skill: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	s.ID = id
	return nil
}

// Update overwrites an existing skill. An unchanged row is not an error.
func (r *SkillRepository) Update(ctx context.Context, s *Skill) error {
	query := `UPDATE skills SET name = :name, category = :category, proficiency_level = :proficiency_level,
		icon = :icon, description = :description WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, s); err != nil {
		return fmt.Errorf("failed to update skill: %w", err)
	}
	return nil
}

// Delete removes a skill by its ID.
func (r *SkillRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM skills WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete skill: %w", err)
	}
	return expectAffected(result)
}
