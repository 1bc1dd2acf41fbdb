package config

import (
	"fmt"
)

const (
	ClassicQueueType = "classic"
	QuorumQueueType  = "quorum"
)

type QueueConfig struct {
	QueueUser              string `mapstructure:"queue_user"`
	QueuePassword          string `mapstructure:"queue_password"`
	Url                    string `mapstructure:"url"`
	QueueProcessingTimeout int    `mapstructure:"processing_timeout"`
	MsgMaxRetryAttempts    int32  `mapstructure:"msg_max_retry_attempts"`
	ReQueueDelayTime       int    `mapstructure:"requeue_delay_time"`
	QueueType              string `mapstructure:"queue_type"`
}

func (cfg *QueueConfig) Validate() error {
	if cfg.QueueUser == "" {
		return fmt.Errorf("missing queue user")
	}

	if cfg.QueuePassword == "" {
		return fmt.Errorf("missing queue password")
	}

	if cfg.Url == "" {
		return fmt.Errorf("missing queue url")
	}

	if cfg.QueueProcessingTimeout <= 0 {
		return fmt.Errorf("invalid queue processing timeout")
	}

	if cfg.MsgMaxRetryAttempts <= 0 {
		return fmt.Errorf("invalid queue message max retry attempts")
	}

	if cfg.ReQueueDelayTime <= 0 {
		return fmt.Errorf("requeue delay time should be positive")
	}

	switch cfg.QueueType {
	case "":
		cfg.QueueType = QuorumQueueType
	case ClassicQueueType, QuorumQueueType:
	default:
		return fmt.Errorf("unsupported queue type %s", cfg.QueueType)
	}

	return nil
}
