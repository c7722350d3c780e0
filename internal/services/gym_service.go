package services

import (
	"encoding/json"
	"errors"
	"gymhub/internal/models"
	"gymhub/internal/tenant"
	"gymhub/pkg/logger"
	"time"
	"unicode/utf8"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// GymService 健身房服务
// 负责健身房登记与租户库开通的两步流程，开通状态落库可观测
type GymService struct {
	db          *gorm.DB
	provisioner *tenant.Provisioner
}

func NewGymService(db *gorm.DB, provisioner *tenant.Provisioner) *GymService {
	return &GymService{
		db:          db,
		provisioner: provisioner,
	}
}

// provisionLog 开通过程观测记录，序列化进 Gym.ProvisionLog
type provisionLog struct {
	Attempts    int    `json:"attempts"`
	LastError   string `json:"last_error,omitempty"`
	LastAttempt string `json:"last_attempt"`
}

// ValidateName 健身房名称校验
func (s *GymService) ValidateName(name string) bool {
	runeCount := utf8.RuneCountInString(name)
	return runeCount >= 1 && runeCount <= 100
}

// Create 登记健身房并开通租户库
// 流程：校验 -> 派生库名并查重 -> 写入provisioning状态 -> 开通 -> ready/failed
func (s *GymService) Create(name string, ownerID uint) (*models.Gym, error) {
	if !s.ValidateName(name) {
		return nil, errors.New("健身房名称长度必须在1-100个字符之间")
	}

	// 所有者必须存在
	var ownerCount int64
	if err := s.db.Model(&models.User{}).Where("id = ?", ownerID).Count(&ownerCount).Error; err != nil {
		return nil, err
	}
	if ownerCount == 0 {
		return nil, ErrOwnerNotFound
	}

	// 库名查重：不同名称可能折叠为同一个slug，这里拒绝冲突
	dbName := s.provisioner.DeriveDBName(name)
	var nameCount int64
	if err := s.db.Model(&models.Gym{}).Where("db_name = ?", dbName).Count(&nameCount).Error; err != nil {
		return nil, err
	}
	if nameCount > 0 {
		return nil, ErrDBNameTaken
	}

	gym := &models.Gym{
		Name:    name,
		DBName:  dbName,
		OwnerID: ownerID,
		Status:  models.GymStatusProvisioning,
	}
	if err := s.db.Create(gym).Error; err != nil {
		return nil, err
	}

	// 核心行已提交后再做物理开通，失败可被调度器重试
	if err := s.runProvision(gym); err != nil {
		return gym, err
	}
	return gym, nil
}

// runProvision 执行一次开通尝试并更新状态与观测记录
func (s *GymService) runProvision(gym *models.Gym) error {
	log := provisionLog{LastAttempt: time.Now().Format(time.RFC3339)}
	if len(gym.ProvisionLog) > 0 {
		_ = json.Unmarshal(gym.ProvisionLog, &log)
		log.LastAttempt = time.Now().Format(time.RFC3339)
	}
	log.Attempts++

	_, err := s.provisioner.Provision(gym.Name)
	if err != nil {
		log.LastError = err.Error()
		gym.Status = models.GymStatusFailed
	} else {
		log.LastError = ""
		gym.Status = models.GymStatusReady
	}

	if raw, marshalErr := json.Marshal(log); marshalErr == nil {
		gym.ProvisionLog = datatypes.JSON(raw)
	}

	if saveErr := s.db.Model(&models.Gym{}).Where("id = ?", gym.ID).
		Updates(map[string]interface{}{
			"status":        gym.Status,
			"provision_log": gym.ProvisionLog,
		}).Error; saveErr != nil {
		logger.GetLogger().Errorf("更新健身房 %d 开通状态失败: %v", gym.ID, saveErr)
	}

	return err
}

// RetryUnprovisioned 重试开通失败或卡滞的健身房（调度器调用）
// 建库和结构迁移都是幂等的，重复执行安全
func (s *GymService) RetryUnprovisioned(staleAfter time.Duration) error {
	var gyms []models.Gym
	cutoff := time.Now().Add(-staleAfter)
	err := s.db.
		Where("status = ? OR (status = ? AND updated_at < ?)",
			models.GymStatusFailed, models.GymStatusProvisioning, cutoff).
		Find(&gyms).Error
	if err != nil {
		return err
	}

	for i := range gyms {
		gym := &gyms[i]
		if err := s.runProvision(gym); err != nil {
			logger.GetLogger().Errorf("重试开通健身房 %s (ID: %d) 失败: %v", gym.Name, gym.ID, err)
		} else {
			logger.GetLogger().Infof("健身房 %s (ID: %d) 重试开通成功", gym.Name, gym.ID)
		}
	}
	return nil
}

// GetByID 根据ID获取健身房
func (s *GymService) GetByID(id uint) (*models.Gym, error) {
	var gym models.Gym
	err := s.db.First(&gym, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGymNotFound
		}
		return nil, err
	}
	return &gym, nil
}

// ListForUser 查询用户可访问的健身房列表（所有者或被授权管理员）
func (s *GymService) ListForUser(userID uint) ([]*models.Gym, error) {
	var gyms []*models.Gym
	err := s.db.
		Scopes(models.AccessibleGymScope(userID)).
		Preload("Owner").
		Order("id").
		Find(&gyms).Error
	return gyms, err
}

// FindAccessibleGym 租户解析：将认证主体映射到一个可访问的健身房
// 指定gymID时校验访问权限；未指定时取ID最小的可访问健身房
// 只有开通完成（ready）的健身房可被解析为租户
func (s *GymService) FindAccessibleGym(userID, gymID uint) (*models.Gym, error) {
	query := s.db.
		Scopes(models.AccessibleGymScope(userID)).
		Where("status = ?", models.GymStatusReady)

	if gymID > 0 {
		query = query.Where("id = ?", gymID)
	}

	var gym models.Gym
	err := query.Order("id").First(&gym).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoAccessibleGym
		}
		return nil, err
	}
	return &gym, nil
}

// AddAdmin 授权用户管理健身房，(userId, gymId) 唯一
func (s *GymService) AddAdmin(userID, gymID uint) (*models.GymAdmin, error) {
	var count int64
	if err := s.db.Model(&models.GymAdmin{}).
		Where("user_id = ? AND gym_id = ?", userID, gymID).
		Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, errors.New("该用户已是此健身房的管理员")
	}

	admin := &models.GymAdmin{UserID: userID, GymID: gymID}
	if err := s.db.Create(admin).Error; err != nil {
		return nil, err
	}
	return admin, nil
}
