package jwt

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/zeebo/errs"
)

var (
	Error = errs.Class("jwt")
	// ErrExpired 链接已过期
	ErrExpired = errs.Class("token expired")
	// ErrInvalid 签名或内容不合法
	ErrInvalid = errs.Class("token invalid")
)

type Config struct {
	Key         string        `help:"签名密钥" default:""`
	Issuer      string        `help:"签发者" default:"reportx"`
	TokenExpire time.Duration `help:"下载链接有效期" default:"15m"`
}

// TokenPayload 下载链接携带的内容
type TokenPayload struct {
	Key      string `json:"key"`
	FileName string `json:"name"`
	MimeType string `json:"mime"`
}

type claims struct {
	TokenPayload
	jwt.RegisteredClaims
}

type Jwt struct {
	key    []byte
	issuer string
	expire time.Duration
	now    func() time.Time
}

func NewJwt(conf Config) (*Jwt, error) {
	if conf.Key == "" {
		return nil, Error.New("signing key is empty")
	}
	if conf.TokenExpire <= 0 {
		conf.TokenExpire = 15 * time.Minute
	}
	return &Jwt{key: []byte(conf.Key), issuer: conf.Issuer, expire: conf.TokenExpire, now: time.Now}, nil
}

// CreateToken 签发下载令牌，返回令牌和过期时间戳
func (j *Jwt) CreateToken(payload TokenPayload) (string, int64, error) {
	now := j.now()
	exp := now.Add(j.expire)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		TokenPayload: payload,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    j.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	})
	s, err := token.SignedString(j.key)
	if err != nil {
		return "", 0, Error.Wrap(err)
	}
	return s, exp.Unix(), nil
}

// ValidateToken 校验令牌并返回内容
func (j *Jwt) ValidateToken(s string) (*TokenPayload, error) {
	var c claims
	_, err := jwt.ParseWithClaims(s, &c, func(t *jwt.Token) (interface{}, error) {
		return j.key, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(j.issuer),
		jwt.WithTimeFunc(j.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpired.Wrap(err)
		}
		return nil, ErrInvalid.Wrap(err)
	}
	if c.Key == "" {
		return nil, ErrInvalid.New("missing storage key")
	}
	return &c.TokenPayload, nil
}
