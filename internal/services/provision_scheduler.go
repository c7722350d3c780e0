package services

import (
	"fmt"
	"gymhub/pkg/logger"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// ProvisionScheduler 租户库开通重试调度器
// 周期性扫描开通失败或长时间停留在provisioning的健身房并重试
type ProvisionScheduler struct {
	gymService *GymService
	cron       *cron.Cron
	spec       string
	staleAfter time.Duration
	mu         sync.Mutex
	running    bool
}

// NewProvisionScheduler 创建开通重试调度器
func NewProvisionScheduler(gymService *GymService) *ProvisionScheduler {
	return &ProvisionScheduler{
		gymService: gymService,
		cron:       cron.New(),
		spec:       "@every 1m",
		staleAfter: 5 * time.Minute,
	}
}

// Start 启动调度器
func (s *ProvisionScheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return fmt.Errorf("调度器已经在运行")
	}

	_, err := s.cron.AddFunc(s.spec, func() {
		if err := s.gymService.RetryUnprovisioned(s.staleAfter); err != nil {
			logger.GetLogger().Errorf("扫描待重试健身房失败: %v", err)
		}
	})
	if err != nil {
		return fmt.Errorf("注册开通重试任务失败: %v", err)
	}

	s.cron.Start()
	s.running = true
	logger.GetLogger().Info("租户库开通重试调度器启动成功")
	return nil
}

// Stop 停止调度器
func (s *ProvisionScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return
	}

	logger.GetLogger().Info("停止租户库开通重试调度器")
	s.cron.Stop()
	s.running = false
}
