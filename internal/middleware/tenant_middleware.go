package middleware

import (
	"errors"
	"gymhub/internal/services"
	"gymhub/pkg/response"
	"strconv"

	"github.com/gin-gonic/gin"
)

// TenantMiddleware 租户解析中间件
// 将认证主体映射到本次请求可访问的唯一租户库
type TenantMiddleware struct {
	gymService *services.GymService
}

func NewTenantMiddleware(gymService *services.GymService) *TenantMiddleware {
	return &TenantMiddleware{
		gymService: gymService,
	}
}

// RequireTenant 解析租户库并注入上下文，必须在 RequireLogin 之后
func (m *TenantMiddleware) RequireTenant() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := GetUserID(c)
		if !ok {
			response.Unauthorized(c, "需要认证令牌")
			c.Abort()
			return
		}

		// 客户端可通过请求头显式选择健身房
		var gymID uint
		if header := c.GetHeader(HeaderGymID); header != "" {
			parsed, err := strconv.ParseUint(header, 10, 32)
			if err != nil {
				response.BadRequest(c, "健身房ID格式错误")
				c.Abort()
				return
			}
			gymID = uint(parsed)
		}

		gym, err := m.gymService.FindAccessibleGym(userID, gymID)
		if err != nil {
			if errors.Is(err, services.ErrNoAccessibleGym) {
				response.Forbidden(c, "没有可访问的健身房")
			} else {
				response.ServerError(c, "租户解析失败")
			}
			c.Abort()
			return
		}

		// 向下游传递租户库名和健身房ID
		c.Set(ContextKeyTenantDB, gym.DBName)
		c.Set(ContextKeyGymID, gym.ID)

		c.Next()
	}
}
