package config

import (
	"errors"
	"strings"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// ShiftConfig holds the on-device settings a manager edits between shifts.
type ShiftConfig struct {
	PackSizes   []int  `mapstructure:"packSizes" json:"pack_sizes"`
	ReportTitle string `mapstructure:"reportTitle" json:"report_title"`
	SMSNumber   string `mapstructure:"smsNumber" json:"sms_number"`
	EmailTo     string `mapstructure:"emailTo" json:"email_to"`
}

// DefaultPackSizes are the case sizes offered by the pack size picker.
var DefaultPackSizes = []int{1, 6, 12, 18, 24, 30, 32, 40}

func DefaultShiftConfig(cfg Config) ShiftConfig {
	return ShiftConfig{
		PackSizes:   append([]int(nil), DefaultPackSizes...),
		ReportTitle: cfg.Delivery.ReportTitle,
		SMSNumber:   cfg.Delivery.SMSNumber,
		EmailTo:     cfg.Delivery.EmailTo,
	}
}

type ShiftConfigHolder struct {
	current atomic.Value // holds ShiftConfig
}

// NewStaticShiftConfigHolder returns a holder that never reloads.
func NewStaticShiftConfigHolder(cfg ShiftConfig) *ShiftConfigHolder {
	holder := &ShiftConfigHolder{}
	holder.current.Store(cfg)
	return holder
}

// NewShiftConfigHolder reads shift.yml and keeps it current while the file changes.
func NewShiftConfigHolder(cfg Config, log *zap.Logger) (*ShiftConfigHolder, error) {
	log = log.Named("config.shift")
	v := viper.New()

	v.SetConfigName("shift")
	v.SetConfigType("yml")
	for _, path := range cfg.ShiftConfigPaths {
		v.AddConfigPath(path)
	}

	v.SetEnvPrefix("SHIFTCOUNT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	defaults := DefaultShiftConfig(cfg)
	v.SetDefault("shift.packSizes", defaults.PackSizes)
	v.SetDefault("shift.reportTitle", defaults.ReportTitle)
	v.SetDefault("shift.smsNumber", defaults.SMSNumber)
	v.SetDefault("shift.emailTo", defaults.EmailTo)

	watch := true
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
		watch = false
	}

	var shift ShiftConfig
	if err := v.UnmarshalKey("shift", &shift); err != nil {
		return nil, err
	}
	if err := validateShiftConfig(shift); err != nil {
		return nil, err
	}

	holder := NewStaticShiftConfigHolder(shift)
	if !watch {
		return holder, nil
	}

	v.WatchConfig()
	v.OnConfigChange(func(e fsnotify.Event) {
		var updated ShiftConfig
		if err := v.UnmarshalKey("shift", &updated); err != nil {
			log.Warn("reload failed", zap.Error(err))
			return
		}
		if err := validateShiftConfig(updated); err != nil {
			log.Warn("invalid config ignored", zap.Error(err))
			return
		}
		holder.current.Store(updated)
		log.Info("reloaded", zap.String("file", e.Name))
	})

	return holder, nil
}

func (h *ShiftConfigHolder) Get() ShiftConfig {
	return h.current.Load().(ShiftConfig)
}

func validateShiftConfig(cfg ShiftConfig) error {
	if len(cfg.PackSizes) == 0 {
		return errors.New("shift.packSizes cannot be empty")
	}
	for _, size := range cfg.PackSizes {
		if size <= 0 {
			return errors.New("shift.packSizes must be positive")
		}
	}
	return nil
}
