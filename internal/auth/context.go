package auth

import (
	"strings"

	"github.com/gin-gonic/gin"
)

const CtxFirebaseUID = "firebase_uid"

// UserFirebaseUID extracts the caller's uid from the Gin context. It is set
// by FirebaseAuthMiddleware or OptionalUser.
func UserFirebaseUID(c *gin.Context) string {
	return strings.TrimSpace(c.GetString(CtxFirebaseUID))
}
