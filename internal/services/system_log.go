package services

import (
	"encoding/json"
	"strconv"
	"time"

	"github.com/peopledesk/peopledesk/internal/models"
	"github.com/peopledesk/peopledesk/pkg/logger"
	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

var globalDB *gorm.DB

func InitSystemLogger(db *gorm.DB) {
	globalDB = db
}

func LogInfo(module, action, message string, userID *uint, ip, userAgent, requestID string, extra interface{}) {
	writeLog("info", module, action, message, userID, ip, userAgent, requestID, extra)
}

func LogWarning(module, action, message string, userID *uint, ip, userAgent, requestID string, extra interface{}) {
	writeLog("warning", module, action, message, userID, ip, userAgent, requestID, extra)
}

func writeLog(level, module, action, message string, userID *uint, ip, userAgent, requestID string, extra interface{}) {
	if globalDB == nil {
		return
	}

	var extraStr string
	if extra != nil {
		if b, err := json.Marshal(extra); err == nil {
			extraStr = string(b)
		}
	}

	entry := &models.SystemLog{
		Level:     level,
		Module:    module,
		Action:    action,
		Message:   message,
		UserID:    userID,
		IP:        ip,
		UserAgent: userAgent,
		RequestID: requestID,
		Extra:     extraStr,
		CreatedAt: time.Now(),
	}
	globalDB.Create(entry)
}

type SystemLogService struct {
	db *gorm.DB
}

func NewSystemLogService(db *gorm.DB) *SystemLogService {
	return &SystemLogService{db: db}
}

type SystemLogListRequest struct {
	Page      int    `form:"page"`
	PageSize  int    `form:"page_size"`
	Level     string `form:"level"`
	Module    string `form:"module"`
	Action    string `form:"action"`
	StartDate string `form:"start_date"`
	EndDate   string `form:"end_date"`
	Search    string `form:"search"`
}

type SystemLogListResponse struct {
	Total    int64              `json:"total"`
	Page     int                `json:"page"`
	PageSize int                `json:"page_size"`
	Items    []models.SystemLog `json:"items"`
}

func (s *SystemLogService) List(req *SystemLogListRequest) (*SystemLogListResponse, error) {
	if req.Page <= 0 {
		req.Page = 1
	}
	if req.PageSize <= 0 {
		req.PageSize = 20
	}

	var logs []models.SystemLog
	var total int64

	query := s.db.Model(&models.SystemLog{})

	if req.Level != "" {
		query = query.Where("level = ?", req.Level)
	}
	if req.Module != "" {
		query = query.Where("module = ?", req.Module)
	}
	if req.Action != "" {
		query = query.Where("action LIKE ?", "%"+req.Action+"%")
	}
	if req.StartDate != "" {
		query = query.Where("created_at >= ?", req.StartDate)
	}
	if req.EndDate != "" {
		query = query.Where("created_at <= ?", req.EndDate+" 23:59:59")
	}
	if req.Search != "" {
		query = query.Where("message LIKE ?", "%"+req.Search+"%")
	}

	query.Count(&total)

	offset := (req.Page - 1) * req.PageSize
	if err := query.Offset(offset).Limit(req.PageSize).Order("created_at DESC").Find(&logs).Error; err != nil {
		return nil, err
	}

	return &SystemLogListResponse{
		Total:    total,
		Page:     req.Page,
		PageSize: req.PageSize,
		Items:    logs,
	}, nil
}

// CleanupOldLogs deletes audit records older than retentionDays.
// Returns the number of deleted records.
func (s *SystemLogService) CleanupOldLogs(retentionDays int) (int64, error) {
	if retentionDays <= 0 {
		return 0, nil
	}

	cutoff := time.Now().AddDate(0, 0, -retentionDays)
	result := s.db.Where("created_at < ?", cutoff).Delete(&models.SystemLog{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

const retentionConfigKey = "log_retention_days"

// GetRetentionDays returns the retention window stored in system config,
// or fallback when no override has been set.
func (s *SystemLogService) GetRetentionDays(fallback int) int {
	var cfg models.SystemConfig
	if err := s.db.Where("config_key = ?", retentionConfigKey).First(&cfg).Error; err != nil {
		return fallback
	}

	days, err := strconv.Atoi(cfg.Value)
	if err != nil {
		return fallback
	}
	return days
}

// SetRetentionDays stores the retention window override in system config.
func (s *SystemLogService) SetRetentionDays(days int) error {
	cfg := models.SystemConfig{
		Key:   retentionConfigKey,
		Type:  "int",
		Label: "Audit log retention days",
	}
	return s.db.Where("config_key = ?", retentionConfigKey).
		Assign(map[string]interface{}{"value": strconv.Itoa(days)}).
		FirstOrCreate(&cfg).Error
}

var cleanupCron *cron.Cron

// StartLogCleanupScheduler runs the retention cleanup once at startup and
// then daily at 03:30. The retention window is re-read from system config
// on every run; defaultRetentionDays applies when no override is stored.
func StartLogCleanupScheduler(db *gorm.DB, defaultRetentionDays int) {
	service := NewSystemLogService(db)
	runCleanup(service, defaultRetentionDays)

	cleanupCron = cron.New()
	if _, err := cleanupCron.AddFunc("30 3 * * *", func() {
		runCleanup(service, defaultRetentionDays)
	}); err != nil {
		logger.Warn().Err(err).Msg("failed to schedule audit log cleanup")
		return
	}
	cleanupCron.Start()
}

// StopLogCleanupScheduler stops the cleanup cron.
func StopLogCleanupScheduler() {
	if cleanupCron != nil {
		cleanupCron.Stop()
	}
}

func runCleanup(service *SystemLogService, defaultRetentionDays int) {
	retentionDays := service.GetRetentionDays(defaultRetentionDays)
	deleted, err := service.CleanupOldLogs(retentionDays)
	if err != nil {
		logger.Warn().Err(err).Msg("audit log cleanup failed")
		return
	}
	if deleted > 0 {
		logger.Info().Int64("deleted", deleted).Int("retention_days", retentionDays).Msg("audit log cleanup")
	}
}
