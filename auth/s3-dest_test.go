package auth_test

import (
	"io/ioutil"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"

	. "github.com/etaque/gfs-wind-downloader/auth"
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

// fakeS3 implements just the multipart calls that S3Destination uses,
// recording what it was asked to do.
type fakeS3 struct {
	s3iface.S3API

	createInput   *s3.CreateMultipartUploadInput
	partInputs    []*s3.UploadPartInput
	partBodies    [][]byte
	completeInput *s3.CompleteMultipartUploadInput
	abortInput    *s3.AbortMultipartUploadInput
}

func (f *fakeS3) CreateMultipartUpload(input *s3.CreateMultipartUploadInput) (*s3.CreateMultipartUploadOutput, error) {
	f.createInput = input
	return &s3.CreateMultipartUploadOutput{UploadId: aws.String("upload-id")}, nil
}

func (f *fakeS3) UploadPart(input *s3.UploadPartInput) (*s3.UploadPartOutput, error) {
	f.partInputs = append(f.partInputs, input)
	body, _ := ioutil.ReadAll(input.Body)
	f.partBodies = append(f.partBodies, body)
	return &s3.UploadPartOutput{ETag: aws.String("etag")}, nil
}

func (f *fakeS3) CompleteMultipartUpload(input *s3.CompleteMultipartUploadInput) (*s3.CompleteMultipartUploadOutput, error) {
	f.completeInput = input
	return &s3.CompleteMultipartUploadOutput{}, nil
}

func (f *fakeS3) AbortMultipartUpload(input *s3.AbortMultipartUploadInput) (*s3.AbortMultipartUploadOutput, error) {
	f.abortInput = input
	return &s3.AbortMultipartUploadOutput{}, nil
}

var _ = Describe("S3Destination", func() {
	var (
		fake        *fakeS3
		destination *S3Destination
	)

	BeforeEach(func() {
		fake = &fakeS3{}
		destination = &S3Destination{S3: fake}
	})

	It("Creates the multipart upload against the bucket and key", func() {
		uploadID, err := destination.CreateUpload("bucket", "key")
		Expect(err).ShouldNot(HaveOccurred())
		Expect(uploadID).To(Equal("upload-id"))
		Expect(aws.StringValue(fake.createInput.Bucket)).To(Equal("bucket"))
		Expect(aws.StringValue(fake.createInput.Key)).To(Equal("key"))
	})

	It("Uploads parts under their part number and returns the ETag", func() {
		tag, err := destination.UploadPart("bucket", "key", "upload-id", 3, []byte("part data"))
		Expect(err).ShouldNot(HaveOccurred())
		Expect(tag).To(Equal("etag"))
		Expect(fake.partInputs).To(HaveLen(1))
		Expect(aws.Int64Value(fake.partInputs[0].PartNumber)).To(Equal(int64(3)))
		Expect(aws.StringValue(fake.partInputs[0].UploadId)).To(Equal("upload-id"))
		Expect(fake.partBodies[0]).To(Equal([]byte("part data")))
	})

	It("Completes with the parts in the order given", func() {
		err := destination.CompleteUpload("bucket", "key", "upload-id", []CompletedPart{
			{PartNumber: 1, Tag: "one"},
			{PartNumber: 2, Tag: "two"},
		})
		Expect(err).ShouldNot(HaveOccurred())
		parts := fake.completeInput.MultipartUpload.Parts
		Expect(parts).To(HaveLen(2))
		Expect(aws.Int64Value(parts[0].PartNumber)).To(Equal(int64(1)))
		Expect(aws.StringValue(parts[0].ETag)).To(Equal("one"))
		Expect(aws.Int64Value(parts[1].PartNumber)).To(Equal(int64(2)))
		Expect(aws.StringValue(parts[1].ETag)).To(Equal("two"))
	})

	It("Aborts the named upload", func() {
		Expect(destination.AbortUpload("bucket", "key", "upload-id")).To(Succeed())
		Expect(aws.StringValue(fake.abortInput.UploadId)).To(Equal("upload-id"))
	})
})
