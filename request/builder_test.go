package request_test

import (
	"crypto/md5"
	"encoding/hex"
	"regexp"
	"strconv"
	"testing"
	"time"

	"github.com/harmonode/qobuz/request"
	"github.com/stretchr/testify/require"
)

const (
	testBaseURL = "https://api.example.com/v0.2/"
	testAppID   = "APPID"
	testSecret  = "SECRET"
)

func fixedClock(unix int64) func() time.Time {
	return func() time.Time { return time.Unix(unix, 0) }
}

func newTestBuilder(t *testing.T, options ...request.BuilderOption) *request.Builder {
	t.Helper()
	b, err := request.NewBuilder(testBaseURL, testAppID, testSecret, options...)
	require.NoError(t, err)
	return b
}

func TestNewBuilderValidation(t *testing.T) {
	_, err := request.NewBuilder("", testAppID, testSecret)
	require.Error(t, err)

	_, err = request.NewBuilder(testBaseURL, "", testSecret)
	require.Error(t, err)
}

func TestURL(t *testing.T) {
	b := newTestBuilder(t)

	got := b.URL("catalog", "get", request.Params{{Key: "query", Value: "abc"}})
	require.Equal(t, testBaseURL+"catalog/get?query=abc&app_id=APPID", got)
}

func TestURLKeepsParameterOrder(t *testing.T) {
	b := newTestBuilder(t)

	got := b.URL("track", "getFileUrl", request.Params{
		{Key: "track_id", Value: "123"},
		{Key: "format_id", Value: "5"},
		{Key: "intent", Value: "stream"},
	})
	require.Equal(t,
		testBaseURL+"track/getFileUrl?track_id=123&format_id=5&intent=stream&app_id=APPID",
		got)
}

func TestURLDoesNotEscapeValues(t *testing.T) {
	b := newTestBuilder(t)

	// Raw values go out as-is; the signature covers the raw bytes.
	got := b.URL("catalog", "search", request.Params{{Key: "query", Value: "a b&c"}})
	require.Equal(t, testBaseURL+"catalog/search?query=a b&c&app_id=APPID", got)
}

func TestSignedURLDeterministicSignature(t *testing.T) {
	b := newTestBuilder(t, request.WithNowTime(fixedClock(1000)))

	got := b.SignedURL("catalog", "get", request.Params{{Key: "query", Value: "abc"}})

	// Signing input: object || method || key || value || ts || secret.
	sum := md5.Sum([]byte("catalog" + "get" + "query" + "abc" + "1000" + "SECRET"))
	digest := hex.EncodeToString(sum[:])
	require.Equal(t, "cb8e7320a8c8c99c2f2e58ab553c35ea", digest)

	require.Equal(t,
		testBaseURL+"catalog/get?query=abc&app_id=APPID&request_ts=1000&request_sig="+digest,
		got)
}

func TestSignedURLParameterOrderAndExclusions(t *testing.T) {
	b := newTestBuilder(t, request.WithNowTime(fixedClock(1700000000)))

	params := request.Params{
		{Key: "track_id", Value: "99"},
		{Key: "format_id", Value: "27"},
	}
	got := b.SignedURL("track", "getFileUrl", params)

	// app_id is in the URL but not in the signing input; the secret is in the
	// signing input but not in the URL.
	sum := md5.Sum([]byte("trackgetFileUrltrack_id99format_id271700000000SECRET"))
	digest := hex.EncodeToString(sum[:])

	require.Equal(t,
		testBaseURL+"track/getFileUrl?track_id=99&format_id=27&app_id=APPID"+
			"&request_ts=1700000000&request_sig="+digest,
		got)
	require.NotContains(t, got, testSecret)
	require.Len(t, digest, 32)
}

func TestSignedURLUsesWallClock(t *testing.T) {
	b := newTestBuilder(t)

	before := time.Now().Unix()
	got := b.SignedURL("user", "get", request.Params{{Key: "user_id", Value: "1"}})
	after := time.Now().Unix()

	require.Regexp(t, `request_ts=\d+&request_sig=[0-9a-f]{32}$`, got)

	m := regexp.MustCompile(`request_ts=(\d+)`).FindStringSubmatch(got)
	require.Len(t, m, 2)
	ts, err := strconv.ParseInt(m[1], 10, 64)
	require.NoError(t, err)
	require.GreaterOrEqual(t, ts, before)
	require.LessOrEqual(t, ts, after)
}
