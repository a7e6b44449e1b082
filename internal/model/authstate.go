package model

// AuthPhase 认证状态机所处阶段
type AuthPhase int

const (
	AuthIdle          AuthPhase = iota // 稳定态：未登录
	AuthLoading                        // 瞬态：请求进行中
	AuthAuthenticated                  // 稳定态：已登录
	AuthError                          // 可确认后回到 Idle
)

// String 阶段名称
func (p AuthPhase) String() string {
	switch p {
	case AuthIdle:
		return "Idle"
	case AuthLoading:
		return "Loading"
	case AuthAuthenticated:
		return "Authenticated"
	case AuthError:
		return "Error"
	default:
		return "Unknown"
	}
}

// Transient 是否为瞬态（只有 Loading 是瞬态）
func (p AuthPhase) Transient() bool {
	return p == AuthLoading
}

// AuthState 认证状态，任意时刻恰好处于一个阶段
type AuthState struct {
	Phase   AuthPhase
	Message string // 仅 Phase == AuthError 时有值
}

// StateIdle 未登录状态
func StateIdle() AuthState { return AuthState{Phase: AuthIdle} }

// StateLoading 加载中状态
func StateLoading() AuthState { return AuthState{Phase: AuthLoading} }

// StateAuthenticated 已登录状态
func StateAuthenticated() AuthState { return AuthState{Phase: AuthAuthenticated} }

// StateError 错误状态，携带给用户看的消息
func StateError(message string) AuthState {
	return AuthState{Phase: AuthError, Message: message}
}
