package command

import (
	"context"
	"fmt"

	"github.com/tutorbook/tutorbook/internal/application/model"
	"github.com/tutorbook/tutorbook/internal/domain/lesson"
	"github.com/tutorbook/tutorbook/pkg/logger"
)

// ══════════════════════════════════════════════════════════════════════════════
// LESSON COMMANDS
// ══════════════════════════════════════════════════════════════════════════════

// AddLessonCommand schedules a lesson between existing people.
type AddLessonCommand struct {
	Lesson LessonInput
}

// DeleteLessonCommand removes the lesson matching the given fields.
type DeleteLessonCommand struct {
	Lesson LessonInput
}

// LessonResult contains the affected lesson.
type LessonResult struct {
	Lesson lesson.Lesson
}

// LessonHandler handles lesson commands.
type LessonHandler struct {
	model model.Model
}

// NewLessonHandler creates a new LessonHandler.
func NewLessonHandler(m model.Model) *LessonHandler {
	return &LessonHandler{model: m}
}

// HandleAdd validates and adds the lesson.
func (h *LessonHandler) HandleAdd(ctx context.Context, cmd AddLessonCommand) (res *LessonResult, err error) {
	done := observe(ctx, "add_lesson")
	defer func() { done(err, logger.LessonSubject(cmd.Lesson.Subject)) }()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	l, err := cmd.Lesson.Build()
	if err != nil {
		return nil, fmt.Errorf("add_lesson: %w", err)
	}
	if err := h.model.AddLesson(l); err != nil {
		return nil, fmt.Errorf("add_lesson: %w", err)
	}
	return &LessonResult{Lesson: l}, nil
}

// HandleDelete removes the matching lesson.
func (h *LessonHandler) HandleDelete(ctx context.Context, cmd DeleteLessonCommand) (res *LessonResult, err error) {
	done := observe(ctx, "delete_lesson")
	defer func() { done(err, logger.LessonSubject(cmd.Lesson.Subject)) }()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	l, err := cmd.Lesson.Build()
	if err != nil {
		return nil, fmt.Errorf("delete_lesson: %w", err)
	}
	if err := h.model.DeleteLesson(l); err != nil {
		return nil, fmt.Errorf("delete_lesson: %w", err)
	}
	return &LessonResult{Lesson: l}, nil
}
