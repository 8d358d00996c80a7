package farm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/OpenAgricultureFoundation/gro-api-sub000/pkg/api/types/farms"
	"github.com/OpenAgricultureFoundation/gro-api-sub000/pkg/db"
	kstrings "github.com/OpenAgricultureFoundation/gro-api-sub000/pkg/utils/strings"
)

var (
	// ErrRootServerConnectionRefused : the parent server could not be
	// reached (network error or timeout).
	ErrRootServerConnectionRefused = errors.New("RootServerConnectionRefused")

	// ErrRootServerMessageRejected : the parent server answered, but
	// not with 200.
	ErrRootServerMessageRejected = errors.New("RootServerMessageRejected")
)

// RejectedError carries the parent server's verdict.
type RejectedError struct {
	Status int
	Body   string
}

func (e *RejectedError) Error() string {
	return fmt.Sprintf("%s: status %d: %s", ErrRootServerMessageRejected, e.Status, e.Body)
}

func (e *RejectedError) Unwrap() error {
	return ErrRootServerMessageRejected
}

// Registrar POSTs farm records to a parent server.
type Registrar struct {
	client *http.Client
}

// DefaultRegistrationTimeout bounds the outbound call; on expiry the
// farm reports the parent as unreachable.
const DefaultRegistrationTimeout = 10 * time.Second

func NewRegistrar(timeout time.Duration) *Registrar {
	if timeout <= 0 {
		timeout = DefaultRegistrationTimeout
	}
	return &Registrar{client: &http.Client{Timeout: timeout}}
}

// Register POSTs farm to <parent_server_url>/farms and returns the
// identifier the parent assigned.
func (r *Registrar) Register(ctx context.Context, farm db.Farm) (int64, error) {
	if farm.ParentServerURL == nil || *farm.ParentServerURL == "" {
		return 0, fmt.Errorf("%w: no parent server configured", ErrRootServerConnectionRefused)
	}

	payload, err := json.Marshal(farms.ComposeRegistration(farm))
	if err != nil {
		return 0, err
	}

	url := kstrings.SupplySuffix(*farm.ParentServerURL, "/") + "farms"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("%w: %s", ErrRootServerConnectionRefused, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, fmt.Errorf("%w: reading response: %s", ErrRootServerConnectionRefused, err)
	}

	if resp.StatusCode != http.StatusOK {
		return 0, &RejectedError{Status: resp.StatusCode, Body: string(body)}
	}

	stored := struct {
		ID int64 `json:"id"`
	}{}
	if err := json.Unmarshal(body, &stored); err != nil {
		return 0, &RejectedError{Status: resp.StatusCode, Body: string(body)}
	}
	return stored.ID, nil
}
