package directory

// Consultant профиль консультанта из сервиса каталога
type Consultant struct {
	ID          int64  `json:"id"`
	DisplayName string `json:"displayName"`
	Timezone    string `json:"timezone"` // IANA имя, например "Europe/Belgrade"
	Active      bool   `json:"active"`
}

// Client профиль клиента из сервиса каталога
type ClientProfile struct {
	ID          int64  `json:"id"`
	DisplayName string `json:"displayName"`
}
