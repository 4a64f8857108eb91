package controller

import (
	"learning_path_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// currentUserID 读取中间件写入的用户，缺失时直接返回 401
func currentUserID(ctx *gin.Context) (uint, bool) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return 0, false
	}
	return claims.UserID, true
}

func bindJSON(ctx *gin.Context, dst interface{}) bool {
	if err := ctx.ShouldBindJSON(dst); err != nil {
		util.BadRequest(ctx, "Invalid request body")
		return false
	}
	return true
}

func pathID(ctx *gin.Context, name string) (uint, bool) {
	id, err := util.ParseID(ctx.Param("id"), name)
	if err != nil {
		util.RespondError(ctx, err, "Invalid "+name)
		return 0, false
	}
	return id, true
}
