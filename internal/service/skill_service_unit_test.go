//go:build unit

package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go-portfolio-app/internal/data"
	"go-portfolio-app/internal/logger"
	"go-portfolio-app/internal/validation"
)

func TestSkillService_ProficiencyRange(t *testing.T) {
	tests := []struct {
		name    string
		level   int
		wantErr bool
	}{
		{"lower bound", 0, false},
		{"upper bound", 100, false},
		{"above range", 101, true},
		{"negative", -1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mockSkillRepository{}
			svc := NewSkillService(repo, validation.New(), nil, time.Minute, logger.Nop())

			_, err := svc.Create(context.Background(), data.SkillInput{Name: "Go", Category: "Languages", ProficiencyLevel: tt.level})
			var ve *ValidationError
			if tt.wantErr {
				if !errors.As(err, &ve) {
					t.Fatalf("expected ValidationError, got %v", err)
				}
				if ve.Details["proficiency_level"] == "" {
					t.Errorf("expected proficiency_level detail, got %v", ve.Details)
				}
				if repo.createCalled {
					t.Error("repository should not be called")
				}
				return
			}
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestSkillService_UpdateNotFound(t *testing.T) {
	svc := NewSkillService(&mockSkillRepository{}, validation.New(), nil, time.Minute, logger.Nop())
	id := int64(5)
	_, err := svc.Update(context.Background(), data.SkillInput{ID: &id, Name: "Go", Category: "Languages", ProficiencyLevel: 50})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
