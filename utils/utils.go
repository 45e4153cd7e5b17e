package utils

import (
	"bytes"
	"crypto/rand"
	"crypto/sha512"
	"encoding/base64"
	"encoding/hex"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"io"

	"github.com/nfnt/resize"
)

// Sha512String hashes and encodes in hex the result
func Sha512String(s string) string {
	hash := sha512.New()
	hash.Write([]byte(s))
	return hex.EncodeToString(hash.Sum(nil))
}

func RandSalt(saltSize int) string {
	b := make([]byte, saltSize)
	_, err := rand.Read(b)
	if err != nil {
		panic(err)
	}
	return base64.StdEncoding.EncodeToString(b)
}

// CreateThumb re-encodes the image as a bounded JPEG thumbnail
func CreateThumb(size uint, reader io.Reader, writer io.Writer) (int64, error) {
	img, _, err := image.Decode(reader)
	if err != nil {
		return 0, err
	}
	var buf bytes.Buffer
	thumb := resize.Thumbnail(size, size, img, resize.Lanczos3)
	if err = jpeg.Encode(&buf, thumb, &jpeg.Options{Quality: 90}); err != nil {
		return 0, err
	}
	return io.Copy(writer, &buf)
}
