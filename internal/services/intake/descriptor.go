package intake

import "net/http"

const appName = "Subscription Expiration Notifier"

type descriptorDates struct {
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

type descriptorInfo struct {
	AppName         string `json:"app_name"`
	AppDescription  string `json:"app_description"`
	AppLogo         string `json:"app_logo"`
	AppURL          string `json:"app_url"`
	BackgroundColor string `json:"background_color"`
}

type descriptorOutput struct {
	Label string `json:"label"`
	Value bool   `json:"value"`
}

type descriptorUser struct {
	AlwaysOnline bool   `json:"always_online"`
	DisplayName  string `json:"display_name"`
}

type descriptorSetting struct {
	Label    string `json:"label"`
	Type     string `json:"type"`
	Required bool   `json:"required"`
	Default  string `json:"default"`
}

type Descriptor struct {
	Date                descriptorDates           `json:"date"`
	Descriptions        descriptorInfo            `json:"descriptions"`
	IsActive            bool                      `json:"is_active"`
	IntegrationType     string                    `json:"integration_type"`
	IntegrationCategory string                    `json:"integration_category"`
	Output              []descriptorOutput        `json:"output"`
	KeyFeatures         []string                  `json:"key_features"`
	Permissions         map[string]descriptorUser `json:"permissions"`
	Author              string                    `json:"author"`
	Settings            []descriptorSetting       `json:"settings"`
	TargetURL           string                    `json:"target_url"`
}

// NewDescriptor describes the integration as served from base.
func NewDescriptor(base, displayName string) Descriptor {
	return Descriptor{
		Date: descriptorDates{CreatedAt: "2025-02-21", UpdatedAt: "2025-02-21"},
		Descriptions: descriptorInfo{
			AppName:         appName,
			AppDescription:  "Notifies users when their subscription is close to expiration.",
			AppLogo:         base + "/logo.png",
			AppURL:          base,
			BackgroundColor: "#FFFFFF",
		},
		IsActive:            true,
		IntegrationType:     "output",
		IntegrationCategory: "Monitoring & Logging",
		Output:              []descriptorOutput{{Label: "app_channel", Value: true}},
		KeyFeatures: []string{
			"Notify users before subscription expires",
			"Daily reminders through the expiry day",
			"Email or webhook delivery",
			"Detailed logging of notifications",
		},
		Permissions: map[string]descriptorUser{
			"monitoring_user": {AlwaysOnline: true, DisplayName: displayName},
		},
		Author: "Expirus",
		Settings: []descriptorSetting{
			{Label: labelEmail, Type: "text", Required: false, Default: ""},
			{Label: labelWebhookURL, Type: "text", Required: false, Default: ""},
			{Label: labelSubscription, Type: "text", Required: true, Default: ""},
			{Label: labelExpiryDate, Type: "text", Required: true, Default: ""},
		},
		TargetURL: base + "/target_url",
	}
}

type Status struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

func DescriptorHandler(displayName string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]Descriptor{"data": NewDescriptor(baseURL(r), displayName)})
	})
}

func StatusHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, Status{Status: "ok", Message: appName + " is running"})
	})
}
