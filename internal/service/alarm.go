package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/templui/cuidador/internal/model"
	"github.com/templui/cuidador/internal/repository"
	"github.com/templui/cuidador/internal/validation"
)

// AlarmService keeps the caregiver's reminder list. Ringing them is up to
// the device alarm clock.
type AlarmService struct {
	alarmRepo repository.AlarmRepository
}

func NewAlarmService(alarmRepo repository.AlarmRepository) *AlarmService {
	return &AlarmService{alarmRepo: alarmRepo}
}

func (s *AlarmService) Create(ctx context.Context, alarm *model.Alarm) (*model.Alarm, error) {
	alarm.Label = strings.TrimSpace(alarm.Label)

	err := validation.Struct(alarm)
	if err != nil {
		return nil, err
	}

	_, err = s.alarmRepo.Create(ctx, alarm)
	if err != nil {
		return nil, fmt.Errorf("failed to create alarm: %w", err)
	}
	return alarm, nil
}

func (s *AlarmService) List(ctx context.Context) ([]*model.Alarm, error) {
	return s.alarmRepo.All(ctx)
}

func (s *AlarmService) Delete(ctx context.Context, id int64) error {
	return s.alarmRepo.Delete(ctx, id)
}
