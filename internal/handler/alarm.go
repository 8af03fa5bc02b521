package handler

import (
	"net/http"

	"github.com/templui/cuidador/internal/model"
	"github.com/templui/cuidador/internal/service"
	"github.com/templui/cuidador/internal/ui"
)

type AlarmHandler struct {
	alarmService *service.AlarmService
}

func NewAlarmHandler(alarmService *service.AlarmService) *AlarmHandler {
	return &AlarmHandler{
		alarmService: alarmService,
	}
}

func (h *AlarmHandler) List(w http.ResponseWriter, r *http.Request) {
	alarms, err := h.alarmService.List(r.Context())
	if err != nil {
		fail(w, r, err, "load alarms")
		return
	}
	if alarms == nil {
		alarms = []*model.Alarm{}
	}

	ui.JSON(w, r, http.StatusOK, alarms)
}

func (h *AlarmHandler) Create(w http.ResponseWriter, r *http.Request) {
	var alarm model.Alarm
	if !decode(w, r, &alarm) {
		return
	}

	created, err := h.alarmService.Create(r.Context(), &alarm)
	if err != nil {
		fail(w, r, err, "save alarm")
		return
	}

	ui.JSON(w, r, http.StatusCreated, created)
}

func (h *AlarmHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		badRequest(w, r, "Invalid alarm id")
		return
	}

	err := h.alarmService.Delete(r.Context(), id)
	if err != nil {
		fail(w, r, err, "delete alarm", "alarm_id", id)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
