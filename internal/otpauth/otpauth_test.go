package otpauth

import (
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-otp-migrate/models"
)

func ptr(s string) *string { return &s }

func mustParseURL(t *testing.T, s string) *url.URL {
	t.Helper()
	u, err := url.Parse(s)
	require.NoError(t, err)
	return u
}

func TestFormat(t *testing.T) {
	tests := []struct {
		name string
		otp  models.OTP
		want string
	}{
		{
			name: "issuer without account",
			otp:  models.OTP{Issuer: "Example", Secret: []byte("Hello"), Algorithm: models.SHA1, Digits: 6, Period: models.DefaultPeriod},
			want: "otpauth://totp/Example:?secret=JBSWY3DP&issuer=Example&algorithm=SHA1&digits=6&period=30",
		},
		{
			name: "issuer and account",
			otp:  models.OTP{Issuer: "Example", Account: ptr("alice@google.com"), Secret: []byte("Hello"), Algorithm: models.SHA256, Digits: 8, Period: models.DefaultPeriod},
			want: "otpauth://totp/Example:alice@google.com?secret=JBSWY3DP&issuer=Example&algorithm=SHA256&digits=8&period=30",
		},
		{
			name: "account without issuer",
			otp:  models.OTP{Account: ptr("bob"), Secret: []byte("Hello"), Algorithm: models.SHA512, Digits: 6},
			want: "otpauth://totp/bob?secret=JBSWY3DP&issuer=&algorithm=SHA512&digits=6&period=30",
		},
		{
			name: "spaces are escaped",
			otp:  models.OTP{Issuer: "ACME Co", Account: ptr("john doe"), Secret: []byte("Hello"), Algorithm: models.SHA1, Digits: 6, Period: 60 * time.Second},
			want: "otpauth://totp/ACME%20Co:john%20doe?secret=JBSWY3DP&issuer=ACME+Co&algorithm=SHA1&digits=6&period=60",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Format(tt.otp).String())
		})
	}
}

func TestParse_RoundTrip(t *testing.T) {
	otps := []models.OTP{
		{Issuer: "Example", Secret: []byte("Hello"), Algorithm: models.SHA1, Digits: 6, Period: models.DefaultPeriod},
		{Issuer: "Example", Account: ptr("alice@google.com"), Secret: []byte{0xde, 0xad, 0xbe, 0xef}, Algorithm: models.SHA256, Digits: 8, Period: models.DefaultPeriod},
		{Issuer: "ACME Co", Account: ptr("john doe"), Secret: []byte("12345678901234567890"), Algorithm: models.SHA512, Digits: 6, Period: 60 * time.Second},
		{Issuer: "a:b", Account: ptr("acct"), Secret: []byte("Hello"), Algorithm: models.SHA1, Digits: 6, Period: models.DefaultPeriod},
		{Issuer: "a:b", Account: ptr("c:d"), Secret: []byte("Hello"), Algorithm: models.SHA1, Digits: 6, Period: models.DefaultPeriod},
		{Issuer: "x:", Secret: []byte("Hello"), Algorithm: models.SHA1, Digits: 6, Period: models.DefaultPeriod},
	}

	for _, otp := range otps {
		u := mustParseURL(t, Format(otp).String())
		got, err := Parse(u)
		require.NoError(t, err)
		assert.Equal(t, otp, got)
	}
}

func TestParse_Defaults(t *testing.T) {
	got, err := Parse(mustParseURL(t, "otpauth://totp/Issuer:%20alice?secret=jbswy3dp"))
	require.NoError(t, err)

	assert.Equal(t, "Issuer", got.Issuer)
	assert.Equal(t, "alice", got.AccountName())
	assert.Equal(t, []byte("Hello"), got.Secret)
	assert.Equal(t, models.SHA1, got.Algorithm)
	assert.Equal(t, 6, got.Digits)
	assert.Equal(t, models.DefaultPeriod, got.Period)
}

func TestParse_IssuerParameterWins(t *testing.T) {
	got, err := Parse(mustParseURL(t, "otpauth://TOTP/Label:alice?secret=JBSWY3DP&issuer=Param&algorithm=sha256"))
	require.NoError(t, err)
	assert.Equal(t, "Param", got.Issuer)
	assert.Equal(t, models.SHA256, got.Algorithm)
}

func TestParse_IssuerWithColon(t *testing.T) {
	got, err := Parse(mustParseURL(t, "otpauth://totp/a:b:acct?secret=JBSWY3DP&issuer=a%3Ab"))
	require.NoError(t, err)
	assert.Equal(t, "a:b", got.Issuer)
	assert.Equal(t, "acct", got.AccountName())

	// without the parameter the label splits at its first colon
	got, err = Parse(mustParseURL(t, "otpauth://totp/a:b:acct?secret=JBSWY3DP"))
	require.NoError(t, err)
	assert.Equal(t, "a", got.Issuer)
	assert.Equal(t, "b:acct", got.AccountName())
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		in      string
		wantErr error
	}{
		{in: "otpauth-migration://offline?data=x", wantErr: ErrInvalidScheme},
		{in: "otpauth://hotp/Example?secret=JBSWY3DP&counter=1", wantErr: ErrUnsupportedType},
		{in: "otpauth://totp/Example", wantErr: ErrMissingSecret},
		{in: "otpauth://totp/Example?secret=not*base32", wantErr: ErrInvalidSecret},
		{in: "otpauth://totp/Example?secret=JBSWY3DP&algorithm=MD5", wantErr: ErrInvalidAlgorithm},
		{in: "otpauth://totp/Example?secret=JBSWY3DP&digits=7", wantErr: ErrInvalidDigits},
		{in: "otpauth://totp/Example?secret=JBSWY3DP&digits=six", wantErr: ErrInvalidDigits},
		{in: "otpauth://totp/Example?secret=JBSWY3DP&period=0", wantErr: ErrInvalidPeriod},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			_, err := Parse(mustParseURL(t, tt.in))
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestSecretEncoding(t *testing.T) {
	assert.Equal(t, "JBSWY3DP", EncodeSecret([]byte("Hello")))
	assert.Equal(t, "GEZDGNBVGY3TQOJQGEZDGNBVGY3TQOJQ", EncodeSecret([]byte("12345678901234567890")))
	assert.False(t, strings.Contains(EncodeSecret([]byte{1}), "="))

	for _, in := range []string{"JBSWY3DP", "jbswy3dp", " JBSWY3DP ", "JBSWY3DP===="} {
		got, err := DecodeSecret(in)
		require.NoError(t, err)
		assert.Equal(t, []byte("Hello"), got)
	}
}

// Test vectors from RFC 6238, Appendix B.
func TestGenerateCode_RFC6238(t *testing.T) {
	seed20 := []byte("12345678901234567890")
	seed32 := []byte("12345678901234567890123456789012")
	seed64 := []byte("1234567890123456789012345678901234567890123456789012345678901234")

	tests := []struct {
		secret    []byte
		algorithm models.HashAlgorithm
		unix      int64
		want      string
	}{
		{secret: seed20, algorithm: models.SHA1, unix: 59, want: "94287082"},
		{secret: seed32, algorithm: models.SHA256, unix: 59, want: "46119246"},
		{secret: seed64, algorithm: models.SHA512, unix: 59, want: "90693936"},
		{secret: seed20, algorithm: models.SHA1, unix: 1111111109, want: "07081804"},
		{secret: seed20, algorithm: models.SHA1, unix: 2000000000, want: "69279037"},
	}

	for _, tt := range tests {
		otp := models.OTP{Secret: tt.secret, Algorithm: tt.algorithm, Digits: 8, Period: models.DefaultPeriod}
		got, err := GenerateCode(otp, time.Unix(tt.unix, 0).UTC())
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}
}

func TestGenerateCode_SixDigits(t *testing.T) {
	otp := models.OTP{Secret: []byte("12345678901234567890"), Algorithm: models.SHA1, Digits: 6, Period: models.DefaultPeriod}
	got, err := GenerateCode(otp, time.Unix(59, 0).UTC())
	require.NoError(t, err)
	assert.Equal(t, "287082", got)
}

func TestGenerateCode_InvalidAlgorithm(t *testing.T) {
	_, err := GenerateCode(models.OTP{Secret: []byte("x"), Algorithm: "MD5", Digits: 6}, time.Now())
	assert.ErrorIs(t, err, ErrInvalidAlgorithm)
}
