package security

import (
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/ashkelon/forum/internal/core/domain"
)

// BasicCodec decodes HTTP Basic credentials: "Basic base64(login:password)".
type BasicCodec struct{}

func (BasicCodec) Decode(token string) (domain.Credentials, error) {
	scheme, payload, ok := strings.Cut(strings.TrimSpace(token), " ")
	if !ok || !strings.EqualFold(scheme, "basic") {
		return domain.Credentials{}, fmt.Errorf("%w: expected basic scheme", domain.ErrUnauthenticated)
	}

	raw, err := base64.StdEncoding.DecodeString(strings.TrimSpace(payload))
	if err != nil {
		return domain.Credentials{}, fmt.Errorf("%w: malformed basic payload", domain.ErrUnauthenticated)
	}

	login, password, ok := strings.Cut(string(raw), ":")
	if !ok || login == "" || password == "" {
		return domain.Credentials{}, fmt.Errorf("%w: basic payload must be login:password", domain.ErrUnauthenticated)
	}
	return domain.Credentials{Login: login, Secret: password}, nil
}

// EncodeBasic builds the Authorization value BasicCodec accepts.
func EncodeBasic(login, password string) string {
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(login+":"+password))
}
