//go:build unit

package main

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"go-portfolio-app/internal/admin"
	"go-portfolio-app/internal/data"
	"go-portfolio-app/internal/logger"
)

func TestBeginEdit_DecodesBufferPerKind(t *testing.T) {
	m := admin.NewManager(nil, nil, logger.Nop())

	if err := beginEdit(m, admin.KindSkill, strings.NewReader(`{"id":3,"name":"Go","category":"Languages","proficiency_level":95}`)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	buf, open := m.Buffer(admin.KindSkill)
	if !open {
		t.Fatal("expected an open skill buffer")
	}
	skill := buf.(data.SkillInput)
	if skill.ID == nil || *skill.ID != 3 || skill.ProficiencyLevel != 95 {
		t.Errorf("unexpected buffer %+v", skill)
	}

	if err := beginEdit(m, admin.KindProject, strings.NewReader(`{"title":"X"}`)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	buf, _ = m.Buffer(admin.KindProject)
	if p := buf.(data.ProjectInput); p.Technologies == nil || p.Status != "Completed" {
		t.Errorf("missing fields should keep template defaults, got %+v", p)
	}
}

func TestBeginEdit_Rejects(t *testing.T) {
	m := admin.NewManager(nil, nil, logger.Nop())
	if err := beginEdit(m, admin.KindBlog, strings.NewReader(`{"titel":"typo"}`)); err == nil {
		t.Error("expected unknown field to be rejected")
	}
	if err := beginEdit(m, admin.KindSubscriber, strings.NewReader(`{}`)); !errors.Is(err, admin.ErrReadOnly) {
		t.Errorf("want ErrReadOnly, got %v", err)
	}
}

func TestExistingBuffer(t *testing.T) {
	state := admin.State{Projects: []data.Project{{ID: 2, Title: "Two", Slug: "two"}}}
	buf, err := existingBuffer(state, admin.KindProject, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p := buf.(data.ProjectInput); p.ID == nil || *p.ID != 2 || p.Slug != "two" {
		t.Errorf("unexpected buffer %+v", p)
	}
	if _, err := existingBuffer(state, admin.KindProject, 9); err == nil {
		t.Error("expected not found error")
	}
}

func TestPrintCollection(t *testing.T) {
	state := admin.State{
		Subscribers: []data.Subscriber{{ID: 1, Email: "a@example.com", Active: true}},
		Stats:       data.NewsletterStats{TotalSubscribers: 1, ActiveSubscribers: 1},
	}
	var out bytes.Buffer
	printCollection(&out, admin.KindSubscriber, state)
	if !strings.Contains(out.String(), "1 total, 1 active, 0 recent") || !strings.Contains(out.String(), "a@example.com") {
		t.Errorf("unexpected output:\n%s", out.String())
	}
}
