package auth

import (
	"bytes"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	"github.com/pkg/errors"
)

// S3Destination implements the Destination interface for Amazon S3 using
// the native multipart upload API. The container maps to a bucket and the
// object to a key.
type S3Destination struct {
	S3 s3iface.S3API
}

// NewS3Destination builds a destination from the default AWS credential
// chain. Pass an empty region to use the AWS_REGION environment setting.
func NewS3Destination(region string) (*S3Destination, error) {
	config := aws.NewConfig()
	if region != "" {
		config = config.WithRegion(region)
	}
	sess, err := session.NewSessionWithOptions(session.Options{
		Config:            *config,
		SharedConfigState: session.SharedConfigEnable,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create AWS session")
	}
	return &S3Destination{S3: s3.New(sess)}, nil
}

func (d *S3Destination) CreateUpload(container, object string) (string, error) {
	output, err := d.S3.CreateMultipartUpload(&s3.CreateMultipartUploadInput{
		Bucket: aws.String(container),
		Key:    aws.String(object),
	})
	if err != nil {
		return "", errors.Wrapf(err, "failed to create multipart upload for %s/%s", container, object)
	}
	if output.UploadId == nil || *output.UploadId == "" {
		return "", errors.Errorf("no upload ID returned for %s/%s", container, object)
	}
	return *output.UploadId, nil
}

func (d *S3Destination) UploadPart(container, object, uploadID string, partNumber int, data []byte) (string, error) {
	output, err := d.S3.UploadPart(&s3.UploadPartInput{
		Bucket:     aws.String(container),
		Key:        aws.String(object),
		UploadId:   aws.String(uploadID),
		PartNumber: aws.Int64(int64(partNumber)),
		Body:       bytes.NewReader(data),
	})
	if err != nil {
		return "", errors.Wrapf(err, "failed to upload part %d", partNumber)
	}
	if output.ETag == nil || *output.ETag == "" {
		return "", errors.Errorf("no ETag returned for part %d", partNumber)
	}
	return *output.ETag, nil
}

func (d *S3Destination) CompleteUpload(container, object, uploadID string, parts []CompletedPart) error {
	completed := make([]*s3.CompletedPart, len(parts))
	for index, part := range parts {
		completed[index] = &s3.CompletedPart{
			PartNumber: aws.Int64(int64(part.PartNumber)),
			ETag:       aws.String(part.Tag),
		}
	}
	_, err := d.S3.CompleteMultipartUpload(&s3.CompleteMultipartUploadInput{
		Bucket:   aws.String(container),
		Key:      aws.String(object),
		UploadId: aws.String(uploadID),
		MultipartUpload: &s3.CompletedMultipartUpload{
			Parts: completed,
		},
	})
	return errors.Wrapf(err, "failed to complete multipart upload for %s/%s", container, object)
}

func (d *S3Destination) AbortUpload(container, object, uploadID string) error {
	_, err := d.S3.AbortMultipartUpload(&s3.AbortMultipartUploadInput{
		Bucket:   aws.String(container),
		Key:      aws.String(object),
		UploadId: aws.String(uploadID),
	})
	return errors.Wrapf(err, "failed to abort multipart upload for %s/%s", container, object)
}

// Ensure that S3Destination implements the Destination interface at compile-time
var _ Destination = &S3Destination{}
