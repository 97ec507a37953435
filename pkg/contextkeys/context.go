package contextkeys

// Используем кастомный тип, чтобы избежать коллизий
type contextKey string

// DBContextKey - ключ для *gorm.DB (пул или транзакция)
const DBContextKey = contextKey("db")

// Ключи gin.Context, которые выставляет AuthMiddleware
const (
	UserIDKey    = "userID"
	RoleKey      = "role"
	UserEmailKey = "userEmail"
	UserNameKey  = "userName"
)
