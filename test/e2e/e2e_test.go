//go:build e2e

package e2e

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type cfg struct {
	APIBase     string // http://localhost:8080
	MetricsBase string // http://localhost:8081
	MailhogBase string // http://localhost:8025
	WaitEmail   time.Duration
}

func loadCfg() cfg {
	return cfg{
		APIBase:     getenv("E2E_API_BASE", "http://localhost:8080"),
		MetricsBase: getenv("E2E_METRICS_BASE", "http://localhost:8081"),
		MailhogBase: getenv("E2E_MAILHOG_BASE", "http://localhost:8025"),
		WaitEmail:   mustParseDur(getenv("E2E_WAIT_EMAIL", "30s")),
	}
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func mustParseDur(s string) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		panic(err)
	}
	return d
}

type setting struct {
	Label   string `json:"label"`
	Type    string `json:"type"`
	Default string `json:"default"`
}

type trigger struct {
	Message  string    `json:"message,omitempty"`
	Settings []setting `json:"settings"`
}

// Mailhog API v2, only the fields we read.
type mailhogMessages struct {
	Count    int          `json:"count"`
	Messages []mailhogMsg `json:"items"`
}

type mailhogMsg struct {
	To      []mailhogPerson `json:"To"`
	Content struct {
		Headers map[string][]string `json:"Headers"`
		Body    string              `json:"Body"`
	} `json:"Content"`
}

type mailhogPerson struct {
	Mailbox string `json:"Mailbox"`
	Domain  string `json:"Domain"`
}

func (p mailhogPerson) Email() string {
	if p.Domain == "" {
		return p.Mailbox
	}
	return p.Mailbox + "@" + p.Domain
}

func post(t *testing.T, url string, in any) (int, http.Header, []byte) {
	t.Helper()
	b, err := json.Marshal(in)
	require.NoError(t, err)
	resp, err := http.Post(url, "application/json", bytes.NewReader(b))
	require.NoError(t, err)
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, resp.Header, body
}

func waitHealthy(t *testing.T, c cfg) {
	t.Helper()
	deadline := time.Now().Add(30 * time.Second)
	for time.Now().Before(deadline) {
		resp, err := http.Get(c.MetricsBase + "/healthz")
		if err == nil {
			resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return
			}
		}
		time.Sleep(time.Second)
	}
	t.Fatalf("notifier not healthy at %s", c.MetricsBase)
}

func Test_Trigger_LeadsToEmail(t *testing.T) {
	c := loadCfg()
	waitHealthy(t, c)

	email := fmt.Sprintf("e2e_%d@expirus.dev", time.Now().UnixNano())
	today := time.Now().UTC().Format("02/01/06")

	code, hdr, body := post(t, c.APIBase+"/target_url", trigger{
		Message: "e2e run",
		Settings: []setting{
			{Label: "email", Type: "text", Default: email},
			{Label: "Subscriptions", Type: "text", Default: "E2E Plan"},
			{Label: "expiry_date", Type: "text", Default: today},
		},
	})
	require.Equal(t, http.StatusAccepted, code, string(body))
	require.NotEmpty(t, hdr.Get("X-Job-ID"))

	deadline := time.Now().Add(c.WaitEmail)
	for time.Now().Before(deadline) {
		for _, m := range fetchMailhog(t, c, email) {
			subj := headerFirst(m.Content.Headers, "Subject")
			if strings.Contains(subj, "E2E Plan expires today") {
				require.Contains(t, m.Content.Body, "e2e run")
				return
			}
		}
		time.Sleep(time.Second)
	}
	t.Fatalf("email to %s didn't arrive in %s", email, c.WaitEmail)
}

func Test_Trigger_MissingExpiryRejected(t *testing.T) {
	c := loadCfg()
	waitHealthy(t, c)

	code, _, body := post(t, c.APIBase+"/target_url", trigger{
		Settings: []setting{{Label: "email", Type: "text", Default: "e2e@expirus.dev"}},
	})
	require.Equal(t, http.StatusBadRequest, code)

	var e struct {
		Error string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(body, &e))
	require.Contains(t, e.Error, "expiry_date")
}

func fetchMailhog(t *testing.T, c cfg, to string) []mailhogMsg {
	t.Helper()
	resp, err := http.Get(c.MailhogBase + "/api/v2/messages")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out mailhogMessages
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))

	var res []mailhogMsg
	for _, m := range out.Messages {
		for _, rcpt := range m.To {
			if strings.EqualFold(rcpt.Email(), to) {
				res = append(res, m)
				break
			}
		}
	}
	return res
}

func headerFirst(h map[string][]string, key string) string {
	for k, v := range h {
		if strings.EqualFold(k, key) && len(v) > 0 {
			return v[0]
		}
	}
	return ""
}
