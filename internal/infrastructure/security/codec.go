package security

import (
	"fmt"
	"strings"

	"github.com/ashkelon/forum/internal/core/domain"
	"github.com/ashkelon/forum/internal/core/ports"
)

// SchemeCodec dispatches on the Authorization scheme.
type SchemeCodec struct {
	schemes map[string]ports.TokenCodec
}

// NewSchemeCodec accepts Basic credentials and bearer tokens minted by jwt.
func NewSchemeCodec(jwt *JWTCodec) *SchemeCodec {
	return &SchemeCodec{schemes: map[string]ports.TokenCodec{
		"basic":  BasicCodec{},
		"bearer": jwt,
	}}
}

func (c *SchemeCodec) Decode(token string) (domain.Credentials, error) {
	scheme, _, _ := strings.Cut(strings.TrimSpace(token), " ")
	codec, ok := c.schemes[strings.ToLower(scheme)]
	if !ok {
		return domain.Credentials{}, fmt.Errorf("%w: unsupported authorization scheme", domain.ErrUnauthenticated)
	}
	return codec.Decode(token)
}
