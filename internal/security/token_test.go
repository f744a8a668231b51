package security

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func clockAt(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func claimsExpiringIn(d time.Duration) Claims {
	return Claims{
		Subject:   7,
		Username:  "admin",
		ExpiresAt: jwt.NewNumericDate(fixedNow.Add(d)),
	}
}

func TestTokenCodec_RoundTrip(t *testing.T) {
	codec := NewTokenCodec("s3cret", clockAt(fixedNow))
	in := claimsExpiringIn(24 * time.Hour)

	token, err := codec.Issue(in)
	require.NoError(t, err)

	out, err := codec.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, in.Subject, out.Subject)
	assert.Equal(t, in.Username, out.Username)
	require.NotNil(t, out.ExpiresAt)
	assert.Equal(t, in.ExpiresAt.Unix(), out.ExpiresAt.Unix())
}

func TestTokenCodec_IssueIsDeterministic(t *testing.T) {
	codec := NewTokenCodec("s3cret", clockAt(fixedNow))
	c := claimsExpiringIn(time.Hour)

	a, err := codec.Issue(c)
	require.NoError(t, err)
	b, err := codec.Issue(c)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestTokenCodec_WireFormat(t *testing.T) {
	codec := NewTokenCodec("s3cret", clockAt(fixedNow))
	c := claimsExpiringIn(time.Hour)

	token, err := codec.Issue(c)
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)

	header, err := base64.RawURLEncoding.DecodeString(parts[0])
	require.NoError(t, err)
	assert.JSONEq(t, `{"alg":"HS256","typ":"JWT"}`, string(header))

	payload, err := base64.RawURLEncoding.DecodeString(parts[1])
	require.NoError(t, err)
	var body map[string]any
	require.NoError(t, json.Unmarshal(payload, &body))
	assert.EqualValues(t, 7, body["sub"])
	assert.Equal(t, "admin", body["username"])
	assert.EqualValues(t, c.ExpiresAt.Unix(), body["exp"])

	mac := hmac.New(sha256.New, []byte("s3cret"))
	mac.Write([]byte(parts[0] + "." + parts[1]))
	assert.Equal(t, base64.RawURLEncoding.EncodeToString(mac.Sum(nil)), parts[2])
}

func TestTokenCodec_WrongSecret(t *testing.T) {
	issuer := NewTokenCodec("secret-two", clockAt(fixedNow))
	verifier := NewTokenCodec("secret-one", clockAt(fixedNow))

	token, err := issuer.Issue(claimsExpiringIn(time.Hour))
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	assert.ErrorIs(t, err, ErrSignatureInvalid)
}

func TestTokenCodec_Expired(t *testing.T) {
	codec := NewTokenCodec("s3cret", clockAt(fixedNow))

	token, err := codec.Issue(claimsExpiringIn(-time.Minute))
	require.NoError(t, err)

	_, err = codec.Verify(token)
	assert.ErrorIs(t, err, ErrExpired)
}

func TestTokenCodec_ExpiresAsClockAdvances(t *testing.T) {
	now := fixedNow
	codec := NewTokenCodec("s3cret", func() time.Time { return now })

	token, err := codec.Issue(claimsExpiringIn(time.Hour))
	require.NoError(t, err)

	_, err = codec.Verify(token)
	require.NoError(t, err)

	now = now.Add(2 * time.Hour)
	_, err = codec.Verify(token)
	assert.ErrorIs(t, err, ErrExpired)
}

func TestTokenCodec_NoExpiry(t *testing.T) {
	codec := NewTokenCodec("s3cret", clockAt(fixedNow))

	token, err := codec.Issue(Claims{Subject: 1, Username: "admin"})
	require.NoError(t, err)

	out, err := codec.Verify(token)
	require.NoError(t, err)
	assert.Nil(t, out.ExpiresAt)
}

func TestTokenCodec_TamperedPayload(t *testing.T) {
	codec := NewTokenCodec("s3cret", clockAt(fixedNow))

	token, err := codec.Issue(claimsExpiringIn(time.Hour))
	require.NoError(t, err)
	parts := strings.Split(token, ".")

	forged := base64.RawURLEncoding.EncodeToString([]byte(`{"sub":1,"username":"root","exp":4102444800}`))
	_, err = codec.Verify(parts[0] + "." + forged + "." + parts[2])
	assert.ErrorIs(t, err, ErrSignatureInvalid)
}

func TestTokenCodec_Malformed(t *testing.T) {
	codec := NewTokenCodec("s3cret", clockAt(fixedNow))

	tests := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"one segment", "abc"},
		{"two segments", "abc.def"},
		{"bad base64", "!!!.???.***"},
		{"bad json", base64.RawURLEncoding.EncodeToString([]byte("{")) + ".e30.sig"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := codec.Verify(tc.token)
			assert.ErrorIs(t, err, ErrMalformedToken)
		})
	}
}

func TestTokenCodec_RejectsOtherAlgorithms(t *testing.T) {
	codec := NewTokenCodec("s3cret", clockAt(fixedNow))

	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, claimsExpiringIn(time.Hour)).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = codec.Verify(unsigned)
	assert.ErrorIs(t, err, ErrSignatureInvalid)

	hs512, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claimsExpiringIn(time.Hour)).
		SignedString([]byte("s3cret"))
	require.NoError(t, err)
	_, err = codec.Verify(hs512)
	assert.ErrorIs(t, err, ErrSignatureInvalid)
}
