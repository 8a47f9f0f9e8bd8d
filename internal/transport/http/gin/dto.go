package httpgin

type ErrorResponse struct {
	Error string `json:"error"`
}

type CreateSessionResponse struct {
	SessionID string `json:"sessionId"`
}

type VehicleTypeRequest struct {
	VehicleType string `json:"vehicleType" binding:"required"`
}

type AdjustRequest struct {
	Delta int `json:"delta" binding:"required"`
}

type CustomerInfoRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	Notes   string `json:"notes"`
}

type VehicleInfoRequest struct {
	Make         string `json:"make"`
	Model        string `json:"model"`
	Year         string `json:"year"`
	Color        string `json:"color"`
	LicensePlate string `json:"licensePlate"`
}

type SelectDateRequest struct {
	Date string `json:"date" binding:"required"`
}

type ScheduleRequest struct {
	Date      string `json:"date" binding:"required"`
	TimeLabel string `json:"timeLabel" binding:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Token string `json:"token"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}
