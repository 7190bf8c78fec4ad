package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"snake-arena/models"

	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

type TodoService struct {
	DB *gorm.DB
}

func NewTodoService(db *gorm.DB) *TodoService {
	return &TodoService{DB: db}
}

// TodoInput carries the editable fields of a todo.
type TodoInput struct {
	Title       string
	Description string
	DueDate     *time.Time
}

func (in TodoInput) validate() (TodoInput, error) {
	in.Title = strings.TrimSpace(in.Title)
	if in.Title == "" {
		return in, fmt.Errorf("%w: title is required", ErrValidation)
	}
	return in, nil
}

func (s *TodoService) List(ctx context.Context) ([]models.Todo, error) {
	var todos []models.Todo
	if err := s.DB.WithContext(ctx).Order("created_at ASC").Order("id ASC").Find(&todos).Error; err != nil {
		return nil, fmt.Errorf("list todos: %w", err)
	}
	return todos, nil
}

func (s *TodoService) Get(ctx context.Context, id uint) (*models.Todo, error) {
	return s.find(s.DB.WithContext(ctx), id)
}

func (s *TodoService) Create(ctx context.Context, in TodoInput) (*models.Todo, error) {
	in, err := in.validate()
	if err != nil {
		return nil, err
	}
	todo := &models.Todo{
		Title:       in.Title,
		Slug:        slug.Make(in.Title),
		Description: in.Description,
		DueDate:     in.DueDate,
	}
	if err := s.DB.WithContext(ctx).Create(todo).Error; err != nil {
		return nil, fmt.Errorf("create todo: %w", err)
	}
	return todo, nil
}

// Update replaces the editable fields. The resolved flag is left alone.
func (s *TodoService) Update(ctx context.Context, id uint, in TodoInput) (*models.Todo, error) {
	in, err := in.validate()
	if err != nil {
		return nil, err
	}
	db := s.DB.WithContext(ctx)
	todo, err := s.find(db, id)
	if err != nil {
		return nil, err
	}

	todo.Title = in.Title
	todo.Slug = slug.Make(in.Title)
	todo.Description = in.Description
	todo.DueDate = in.DueDate
	if err := db.Save(todo).Error; err != nil {
		return nil, fmt.Errorf("update todo: %w", err)
	}
	return todo, nil
}

func (s *TodoService) Delete(ctx context.Context, id uint) error {
	res := s.DB.WithContext(ctx).Delete(&models.Todo{}, id)
	if res.Error != nil {
		return fmt.Errorf("delete todo: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: todo not found", ErrNotFound)
	}
	return nil
}

// ToggleResolved flips the resolved flag and returns the updated item.
func (s *TodoService) ToggleResolved(ctx context.Context, id uint) (*models.Todo, error) {
	var todo *models.Todo
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		if todo, err = s.find(tx, id); err != nil {
			return err
		}
		todo.Resolved = !todo.Resolved
		return tx.Model(todo).Update("resolved", todo.Resolved).Error
	})
	if err != nil {
		return nil, err
	}
	return todo, nil
}

func (s *TodoService) find(db *gorm.DB, id uint) (*models.Todo, error) {
	var todo models.Todo
	if err := db.First(&todo, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: todo not found", ErrNotFound)
		}
		return nil, fmt.Errorf("find todo: %w", err)
	}
	return &todo, nil
}
