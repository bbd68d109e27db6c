package codec

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pstuifzand/go-textutils/transform/jsonfmt"
	"github.com/pstuifzand/go-textutils/transform/operr"
)

// DecodeJWT shows the header and payload of a compact JWT as indented JSON.
// The signature is not verified.
func DecodeJWT(token string) (string, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return "", nil
	}

	parts := strings.Split(token, ".")
	if len(parts) < 2 {
		return "", jwtError("missing part #2", nil)
	}

	header, err := jwtPart(parts[0], 1)
	if err != nil {
		return "", err
	}
	payload, err := jwtPart(parts[1], 2)
	if err != nil {
		return "", err
	}

	doc := `{"header":` + header + `,"payload":` + payload + `}`
	return jsonfmt.Format(doc, jsonfmt.Options{Style: jsonfmt.Pretty, Indent: 2})
}

func jwtPart(seg string, n int) (string, error) {
	raw, err := base64.RawURLEncoding.DecodeString(strings.TrimRight(seg, "="))
	if err != nil {
		return "", jwtError(fmt.Sprintf("invalid base64 for part #%d (%v)", n, err), err)
	}
	if !json.Valid(raw) {
		return "", jwtError(fmt.Sprintf("invalid json for part #%d", n), nil)
	}
	return string(raw), nil
}

func jwtError(detail string, cause error) *operr.Error {
	return operr.Wrap(operr.CodecError, "jwt-decoder", "Invalid token specified: "+detail, cause)
}
