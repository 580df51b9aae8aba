package upload_test

import (
	"errors"
	"fmt"

	"github.com/etaque/gfs-wind-downloader/auth"
	"github.com/etaque/gfs-wind-downloader/auth/mock"
	. "github.com/etaque/gfs-wind-downloader/upload"
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

// completeFailDestination accepts everything until CompleteUpload, which
// always fails.
type completeFailDestination struct {
	*mock.BufferDestination
}

func (c completeFailDestination) CompleteUpload(container, object, uploadID string, parts []auth.CompletedPart) error {
	return fmt.Errorf("Mock completion rejection")
}

// patternBytes returns size bytes with a deterministic pattern so that
// reassembled content can be compared against its source.
func patternBytes(size int) []byte {
	data := make([]byte, size)
	for i := range data {
		data[i] = byte(i % 251)
	}
	return data
}

var _ = Describe("MultipartUploader", func() {
	var destination *mock.BufferDestination

	BeforeEach(func() {
		destination = mock.NewBufferDestination()
	})

	Describe("Creating an uploader", func() {
		Context("With valid input", func() {
			It("Should not return an error", func() {
				_, err := NewMultipartUploader(destination, "container", "object")
				Expect(err).ShouldNot(HaveOccurred())
			})
		})
		Context("With empty string as container name", func() {
			It("Should return an InitiationError", func() {
				_, err := NewMultipartUploader(destination, "", "object")
				Expect(err).Should(HaveOccurred())
				var initiationErr *InitiationError
				Expect(errors.As(err, &initiationErr)).To(BeTrue())
			})
		})
		Context("With empty string as object name", func() {
			It("Should return an InitiationError", func() {
				_, err := NewMultipartUploader(destination, "container", "")
				Expect(err).Should(HaveOccurred())
				var initiationErr *InitiationError
				Expect(errors.As(err, &initiationErr)).To(BeTrue())
			})
		})
		Context("When the destination rejects the request", func() {
			It("Should return an InitiationError", func() {
				_, err := NewMultipartUploader(mock.NewErrorDestination(), "container", "object")
				Expect(err).Should(HaveOccurred())
				var initiationErr *InitiationError
				Expect(errors.As(err, &initiationErr)).To(BeTrue())
			})
		})
	})

	Describe("Writing data", func() {
		Context("With less than a full part buffered", func() {
			It("Uploads nothing yet", func() {
				uploader, err := NewMultipartUploader(destination, "container", "object")
				Expect(err).ShouldNot(HaveOccurred())
				Expect(uploader.Write(patternBytes(1024))).To(Succeed())
				Expect(destination.PartSizes).To(BeEmpty())
			})
		})
		Context("With six mebibytes written at once", func() {
			It("Uploads exactly one full part and buffers the remainder", func() {
				uploader, err := NewMultipartUploader(destination, "container", "object")
				Expect(err).ShouldNot(HaveOccurred())
				Expect(uploader.Write(patternBytes(6 * 1024 * 1024))).To(Succeed())
				Expect(destination.PartSizes).To(Equal([]int{MinPartSize}))
				Expect(uploader.Finalize()).To(Succeed())
				Expect(destination.PartSizes).To(Equal([]int{MinPartSize, 1024 * 1024}))
				Expect(destination.CompletedParts).To(HaveLen(2))
				Expect(destination.CompletedParts[0].PartNumber).To(Equal(1))
				Expect(destination.CompletedParts[1].PartNumber).To(Equal(2))
			})
		})
		Context("With more than two full parts in one call", func() {
			It("Uploads every full part immediately", func() {
				uploader, err := NewMultipartUploader(destination, "container", "object")
				Expect(err).ShouldNot(HaveOccurred())
				Expect(uploader.Write(patternBytes(2*MinPartSize + 17))).To(Succeed())
				Expect(destination.PartSizes).To(Equal([]int{MinPartSize, MinPartSize}))
			})
		})
		Context("With many small writes", func() {
			It("Reassembles the exact byte sequence with contiguous part numbers", func() {
				uploader, err := NewMultipartUploader(destination, "container", "object")
				Expect(err).ShouldNot(HaveOccurred())
				content := patternBytes(11*1024*1024 + 37)
				for offset := 0; offset < len(content); offset += 64 * 1024 {
					end := offset + 64*1024
					if end > len(content) {
						end = len(content)
					}
					Expect(uploader.Write(content[offset:end])).To(Succeed())
				}
				Expect(uploader.Finalize()).To(Succeed())
				Expect(destination.FileContent.Bytes()).To(Equal(content))
				Expect(destination.Completed).To(BeTrue())
				for index, part := range destination.CompletedParts {
					Expect(part.PartNumber).To(Equal(index + 1))
					Expect(part.Tag).ToNot(BeEmpty())
				}
			})
		})
		Context("When the destination rejects a part", func() {
			It("Returns a PartUploadError carrying the part number", func() {
				failing := mock.NewFailAfterDestination(1)
				uploader, err := NewMultipartUploader(failing, "container", "object")
				Expect(err).ShouldNot(HaveOccurred())
				err = uploader.Write(patternBytes(2 * MinPartSize))
				Expect(err).Should(HaveOccurred())
				var partErr *PartUploadError
				Expect(errors.As(err, &partErr)).To(BeTrue())
				Expect(partErr.PartNumber).To(Equal(2))
			})
			It("Leaves the session open so that Abort succeeds", func() {
				failing := mock.NewFailAfterDestination(0)
				uploader, err := NewMultipartUploader(failing, "container", "object")
				Expect(err).ShouldNot(HaveOccurred())
				Expect(uploader.Write(patternBytes(MinPartSize))).ToNot(Succeed())
				Expect(uploader.Abort()).To(Succeed())
				Expect(failing.Aborted).To(BeTrue())
			})
		})
	})

	Describe("Finalizing", func() {
		Context("Without any writes", func() {
			It("Uploads exactly one empty part before completing", func() {
				uploader, err := NewMultipartUploader(destination, "container", "object")
				Expect(err).ShouldNot(HaveOccurred())
				Expect(uploader.Finalize()).To(Succeed())
				Expect(destination.PartSizes).To(Equal([]int{0}))
				Expect(destination.CompletedParts).To(HaveLen(1))
				Expect(destination.CompletedParts[0].PartNumber).To(Equal(1))
				Expect(destination.Completed).To(BeTrue())
			})
		})
		Context("With a write followed by an empty buffer", func() {
			It("Does not add a trailing empty part", func() {
				uploader, err := NewMultipartUploader(destination, "container", "object")
				Expect(err).ShouldNot(HaveOccurred())
				Expect(uploader.Write(patternBytes(MinPartSize))).To(Succeed())
				Expect(uploader.Finalize()).To(Succeed())
				Expect(destination.PartSizes).To(Equal([]int{MinPartSize}))
				Expect(destination.CompletedParts).To(HaveLen(1))
			})
		})
		Context("When the destination rejects completion", func() {
			It("Returns a FinalizeError and leaves the session open for Abort", func() {
				failing := completeFailDestination{mock.NewBufferDestination()}
				uploader, err := NewMultipartUploader(failing, "container", "object")
				Expect(err).ShouldNot(HaveOccurred())
				Expect(uploader.Write(patternBytes(100))).To(Succeed())
				err = uploader.Finalize()
				Expect(err).Should(HaveOccurred())
				var finalizeErr *FinalizeError
				Expect(errors.As(err, &finalizeErr)).To(BeTrue())
				Expect(uploader.Abort()).To(Succeed())
			})
		})
		Context("On a consumed session", func() {
			It("Returns a FinalizeError", func() {
				uploader, err := NewMultipartUploader(destination, "container", "object")
				Expect(err).ShouldNot(HaveOccurred())
				Expect(uploader.Finalize()).To(Succeed())
				Expect(uploader.Finalize()).ToNot(Succeed())
			})
		})
	})

	Describe("Aborting", func() {
		It("Consumes the session", func() {
			uploader, err := NewMultipartUploader(destination, "container", "object")
			Expect(err).ShouldNot(HaveOccurred())
			Expect(uploader.Abort()).To(Succeed())
			Expect(destination.Aborted).To(BeTrue())
			Expect(uploader.Abort()).ToNot(Succeed())
			Expect(uploader.Write([]byte("late"))).ToNot(Succeed())
		})
	})

	Describe("Status reporting", func() {
		It("Tracks parts and bytes as they are acknowledged", func() {
			uploader, err := NewMultipartUploader(destination, "container", "object")
			Expect(err).ShouldNot(HaveOccurred())
			Expect(uploader.Write(patternBytes(MinPartSize + 5))).To(Succeed())
			Expect(uploader.Status.PartsUploaded()).To(Equal(uint(1)))
			Expect(uploader.Status.BytesUploaded()).To(Equal(uint(MinPartSize)))
			Expect(uploader.Finalize()).To(Succeed())
			Expect(uploader.Status.PartsUploaded()).To(Equal(uint(2)))
			Expect(uploader.Status.BytesUploaded()).To(Equal(uint(MinPartSize + 5)))
			Expect(uploader.Status.String()).ToNot(BeEmpty())
		})
	})
})
