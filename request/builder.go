// Package request assembles Qobuz API request URLs, including the signed
// variant the API requires for restricted methods. Everything here is pure
// string work; a Builder is safe for concurrent use.
package request

import (
	"crypto/md5"
	"encoding/hex"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// Param is one query parameter. Parameters keep their slice order: it is both
// the order they appear in the URL and the order they are fed to the signing
// input, which a Go map could not guarantee.
type Param struct {
	Key   string
	Value string
}

// Params is an ordered query parameter list.
type Params []Param

// Builder constructs request URLs for one Qobuz application identity.
type Builder struct {
	baseURL   string
	appID     string
	appSecret string
	nowTime   func() time.Time // injectable for testing
}

// BuilderOption defines a function type to modify the Builder instance.
type BuilderOption func(*Builder)

// WithNowTime sets the now time function (primarily for testing)
func WithNowTime(nowFunc func() time.Time) BuilderOption {
	return func(b *Builder) {
		b.nowTime = nowFunc
	}
}

// NewBuilder initializes a Builder for the given API root and application
// identity. The secret is only ever hashed into signatures, never emitted.
func NewBuilder(baseURL, appID, appSecret string, options ...BuilderOption) (*Builder, error) {
	if baseURL == "" {
		return nil, errors.New("[NewBuilder] base URL is required")
	}
	if appID == "" {
		return nil, errors.New("[NewBuilder] app ID is required")
	}

	b := &Builder{
		baseURL:   baseURL,
		appID:     appID,
		appSecret: appSecret,
		nowTime:   time.Now,
	}

	for _, opt := range options {
		opt(b)
	}

	return b, nil
}

// URL builds "{base}{object}/{method}?{params...}&app_id={id}".
//
// Values are appended verbatim, not percent-escaped. The remote API accepts
// the raw form and the signature in SignedURL is computed over the raw
// values, so escaping here would break wire compatibility; callers passing
// reserved characters must escape them beforehand. params must not be empty.
func (b *Builder) URL(object, method string, params Params) string {
	var uri strings.Builder
	uri.WriteString(b.baseURL)
	uri.WriteString(object)
	uri.WriteByte('/')
	uri.WriteString(method)

	q := queryStringBuilder{}
	for _, p := range params {
		q.append(&uri, p.Key, p.Value)
	}
	q.append(&uri, "app_id", b.appID)

	return uri.String()
}

// SignedURL builds the same URL as URL plus the request_ts and request_sig
// parameters. The signature is the lowercase hex MD5 of
//
//	object || method || k1 || v1 || ... || kn || vn || ts || secret
//
// app_id appears in the URL but is never part of the signing input, and the
// secret is part of the signing input but never appears in the URL.
// params must not be empty.
func (b *Builder) SignedURL(object, method string, params Params) string {
	var uri strings.Builder
	uri.WriteString(b.baseURL)
	uri.WriteString(object)
	uri.WriteByte('/')
	uri.WriteString(method)

	var signingInput strings.Builder
	signingInput.WriteString(object)
	signingInput.WriteString(method)

	q := queryStringBuilder{}
	for _, p := range params {
		q.append(&uri, p.Key, p.Value)

		signingInput.WriteString(p.Key)
		signingInput.WriteString(p.Value)
	}

	q.append(&uri, "app_id", b.appID)

	requestTS := strconv.FormatInt(b.nowTime().Unix(), 10)
	q.append(&uri, "request_ts", requestTS)
	signingInput.WriteString(requestTS)

	signingInput.WriteString(b.appSecret)

	digest := md5.Sum([]byte(signingInput.String()))
	q.append(&uri, "request_sig", hex.EncodeToString(digest[:]))

	return uri.String()
}

// queryStringBuilder prefixes the first parameter with '?' and every later
// one with '&'.
type queryStringBuilder struct {
	started bool
}

func (q *queryStringBuilder) append(dest *strings.Builder, name, value string) {
	if q.started {
		dest.WriteByte('&')
	} else {
		dest.WriteByte('?')
		q.started = true
	}

	dest.WriteString(name)
	dest.WriteByte('=')
	dest.WriteString(value)
}
