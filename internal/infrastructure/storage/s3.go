package storage

import (
	"bytes"
	"fmt"
	"path"
	"strings"

	"github.com/alpsistemas/oficina-api/internal/application/usecase"
	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
)

// Verificação em tempo de compilação do porto implementado.
var _ usecase.LogoStore = (*S3Store)(nil)

// S3Store grava a logomarca em um bucket S3. Credenciais vêm da cadeia
// padrão do SDK (env, perfil ou role da instância).
type S3Store struct {
	uploader   *s3manager.Uploader
	downloader *s3manager.Downloader
	bucket     string
}

// NewS3Store abre a sessão AWS na região informada.
func NewS3Store(bucket, region string) (*S3Store, error) {
	sess, err := session.NewSession(&aws.Config{Region: aws.String(region)})
	if err != nil {
		return nil, fmt.Errorf("storage: abrir sessão AWS: %w", err)
	}
	return &S3Store{
		uploader:   s3manager.NewUploader(sess),
		downloader: s3manager.NewDownloader(sess),
		bucket:     bucket,
	}, nil
}

// Save sobe os bytes para logos/<id><ext> e devolve a chave.
func (s *S3Store) Save(companyID, filename string, data []byte) (string, error) {
	key := logoKey(companyID, filename)
	_, err := s.uploader.Upload(&s3manager.UploadInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(logoContentType(filename)),
	})
	if err != nil {
		return "", fmt.Errorf("storage: subir logomarca para o S3: %w", err)
	}
	return key, nil
}

// Open baixa os bytes de uma chave salva por Save.
func (s *S3Store) Open(key string) ([]byte, error) {
	buf := aws.NewWriteAtBuffer(nil)
	_, err := s.downloader.Download(buf, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("storage: baixar logomarca do S3: %w", err)
	}
	return buf.Bytes(), nil
}

func logoContentType(filename string) string {
	switch strings.ToLower(path.Ext(filename)) {
	case ".png":
		return "image/png"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".webp":
		return "image/webp"
	default:
		return "application/octet-stream"
	}
}
