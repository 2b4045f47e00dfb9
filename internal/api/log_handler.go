package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"wellnest/tracker-api/internal/domain"
	"wellnest/tracker-api/internal/service"
)

// LogHandler serves create/list/delete for one tracker kind. decode binds
// and validates the request body into an entry.
type LogHandler[E domain.Loggable[E]] struct {
	logService service.LogService[E]
	decode     func(c *gin.Context) (E, error)
}

func NewLogHandler[E domain.Loggable[E]](logService service.LogService[E], decode func(c *gin.Context) (E, error)) *LogHandler[E] {
	return &LogHandler[E]{logService: logService, decode: decode}
}

func (h *LogHandler[E]) Create(c *gin.Context) {
	email, ok := requireUser(c)
	if !ok {
		return
	}
	entry, err := h.decode(c)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	created, err := h.logService.Create(c.Request.Context(), email, entry)
	if err != nil {
		abortWithInternal(c, err, "Failed to save log entry.")
		return
	}
	c.JSON(http.StatusCreated, created)
}

// List returns the caller's entries newest first.
func (h *LogHandler[E]) List(c *gin.Context) {
	email, ok := requireUser(c)
	if !ok {
		return
	}
	entries, err := h.logService.List(c.Request.Context(), email)
	if err != nil {
		abortWithInternal(c, err, "Failed to retrieve log entries.")
		return
	}
	if entries == nil {
		entries = []E{} // Return empty JSON array, not null
	}
	c.JSON(http.StatusOK, entries)
}

func (h *LogHandler[E]) Delete(c *gin.Context) {
	email, ok := requireUser(c)
	if !ok {
		return
	}
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid log ID format.")
		return
	}

	if err := h.logService.Delete(c.Request.Context(), email, id); err != nil {
		if errors.Is(err, service.ErrLogNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithInternal(c, err, "Failed to delete log entry.")
		}
		return
	}
	c.Status(http.StatusNoContent)
}

// --- Request DTOs ---

type WaterLogRequest struct {
	Liters    float64    `json:"liters" binding:"gte=0"`
	Cups      float64    `json:"cups" binding:"gte=0"`
	Timestamp *time.Time `json:"timestamp"`
}

// SleepLogRequest takes either durationHours or a bedtime/wakeTime pair.
type SleepLogRequest struct {
	DurationHours *float64   `json:"durationHours" binding:"omitempty,gte=0,lte=24"`
	Bedtime       string     `json:"bedtime"`
	WakeTime      string     `json:"wakeTime"`
	Notes         string     `json:"notes"`
	Timestamp     *time.Time `json:"timestamp"`
}

type WorkoutLogRequest struct {
	ExerciseType    domain.ExerciseType `json:"exerciseType" binding:"required"`
	DurationMinutes int                 `json:"durationMinutes" binding:"required,gte=1"`
	Calories        int                 `json:"calories" binding:"gte=0"`
	Timestamp       *time.Time          `json:"timestamp"`
}

type MealLogRequest struct {
	MealType  domain.MealType `json:"mealType" binding:"required"`
	FoodType  domain.FoodType `json:"foodType"`
	Calories  int             `json:"calories" binding:"gte=0"`
	Protein   int             `json:"protein" binding:"gte=0"`
	Carbs     int             `json:"carbs" binding:"gte=0"`
	Fats      int             `json:"fats" binding:"gte=0"`
	Notes     string          `json:"notes"`
	Timestamp *time.Time      `json:"timestamp"`
}

func DecodeWaterLog(c *gin.Context) (domain.WaterLog, error) {
	var req WaterLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return domain.WaterLog{}, err
	}
	if req.Liters == 0 && req.Cups == 0 {
		return domain.WaterLog{}, errors.New("liters or cups must be greater than zero")
	}
	return domain.WaterLog{
		LogMeta: domain.LogMeta{Timestamp: req.Timestamp},
		Liters:  req.Liters,
		Cups:    req.Cups,
	}, nil
}

func DecodeSleepLog(c *gin.Context) (domain.SleepLog, error) {
	var req SleepLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return domain.SleepLog{}, err
	}
	var hours float64
	switch {
	case req.DurationHours != nil:
		hours = *req.DurationHours
	case req.Bedtime != "" && req.WakeTime != "":
		h, err := domain.SleepHoursBetween(req.Bedtime, req.WakeTime)
		if err != nil {
			return domain.SleepLog{}, err
		}
		hours = h
	default:
		return domain.SleepLog{}, errors.New("durationHours or bedtime and wakeTime are required")
	}
	return domain.SleepLog{
		LogMeta:       domain.LogMeta{Timestamp: req.Timestamp},
		DurationHours: hours,
		Notes:         req.Notes,
	}, nil
}

func DecodeWorkoutLog(c *gin.Context) (domain.WorkoutLog, error) {
	var req WorkoutLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return domain.WorkoutLog{}, err
	}
	if !req.ExerciseType.IsValid() {
		return domain.WorkoutLog{}, fmt.Errorf("unknown exercise type %q", req.ExerciseType)
	}
	return domain.WorkoutLog{
		LogMeta:         domain.LogMeta{Timestamp: req.Timestamp},
		ExerciseType:    req.ExerciseType,
		DurationMinutes: req.DurationMinutes,
		Calories:        req.Calories,
	}, nil
}

func DecodeMealLog(c *gin.Context) (domain.MealLog, error) {
	var req MealLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return domain.MealLog{}, err
	}
	if !req.MealType.IsValid() {
		return domain.MealLog{}, fmt.Errorf("unknown meal type %q", req.MealType)
	}
	if req.FoodType != "" && !req.FoodType.IsValid() {
		return domain.MealLog{}, fmt.Errorf("unknown food type %q", req.FoodType)
	}
	return domain.MealLog{
		LogMeta:  domain.LogMeta{Timestamp: req.Timestamp},
		MealType: req.MealType,
		FoodType: req.FoodType,
		Calories: req.Calories,
		Protein:  req.Protein,
		Carbs:    req.Carbs,
		Fats:     req.Fats,
		Notes:    req.Notes,
	}, nil
}
