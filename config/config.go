package config

import (
	"os"
	"strconv"
	"strings"
)

var (
	TLS_DOMAINS      = ""             // e.g. "example.com,example2.com"
	MYSQL_DSN        = ""             // MySQL will be used if this is set
	SQLITE_FILE      = "yatube.db"    // SQLite will be used if MYSQL_DSN is not configured
	BIND_ADDRESS     = "0.0.0.0:8080"
	TMP_DIR          = "/tmp"         // Used for temporary media files (in case of S3 bucket)
	MEDIA_BUCKET_DIR = "media"        // Local directory for uploaded post images
	S3_BUCKET        = ""             // S3 will be used for media if this is set
	S3_REGION        = "us-east-1"
	S3_PREFIX        = ""
	DEBUG_MODE       = true
	POSTS_PER_PAGE   = 10 // Page size for every post listing
	INDEX_CACHE_TTL  = 20 // Seconds the rendered home timeline stays cached
	THUMB_SIZE       = 1024
	TEMPLATES_GLOB   = "templates/*.tmpl"
	SESSION_KEY      = "change me in production"
	SESSION_MAX_AGE  = 365 * 86400 // 1 year
)

func init() {
	readEnvString("TLS_DOMAINS", &TLS_DOMAINS)
	readEnvString("MYSQL_DSN", &MYSQL_DSN)
	readEnvString("SQLITE_FILE", &SQLITE_FILE)
	readEnvString("BIND_ADDRESS", &BIND_ADDRESS)
	readEnvString("TMP_DIR", &TMP_DIR)
	readEnvString("MEDIA_BUCKET_DIR", &MEDIA_BUCKET_DIR)
	readEnvString("S3_BUCKET", &S3_BUCKET)
	readEnvString("S3_REGION", &S3_REGION)
	readEnvString("S3_PREFIX", &S3_PREFIX)
	readEnvBool("DEBUG_MODE", &DEBUG_MODE)
	readEnvInt("POSTS_PER_PAGE", &POSTS_PER_PAGE)
	readEnvInt("INDEX_CACHE_TTL", &INDEX_CACHE_TTL)
	readEnvInt("THUMB_SIZE", &THUMB_SIZE)
	readEnvString("TEMPLATES_GLOB", &TEMPLATES_GLOB)
	readEnvString("SESSION_KEY", &SESSION_KEY)
	readEnvInt("SESSION_MAX_AGE", &SESSION_MAX_AGE)
}

func readEnvString(name string, value *string) {
	v := os.Getenv(name)
	if v == "" {
		return
	}
	*value = v
}

func readEnvBool(name string, value *bool) {
	v := strings.ToLower(os.Getenv(name))
	if v == "true" || v == "1" || v == "yes" || v == "on" {
		*value = true
	} else if v == "false" || v == "0" || v == "no" || v == "off" {
		*value = false
	}
}

func readEnvInt(name string, value *int) {
	v := os.Getenv(name)
	if v == "" {
		return
	}
	f, err := strconv.Atoi(v)
	if err != nil {
		return
	}
	*value = f
}
