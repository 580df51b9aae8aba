package auth_test

import (
	"encoding/json"
	"io/ioutil"
	"net/http"
	"net/http/httptest"

	"github.com/ncw/swift"

	. "github.com/etaque/gfs-wind-downloader/auth"
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("SwiftDestination", func() {
	Describe("CompleteUpload", func() {
		It("PUTs a static large object manifest referencing the segments in order", func() {
			var (
				requestPath  string
				requestQuery string
				requestToken string
				requestBody  []byte
			)
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				requestPath = r.URL.Path
				requestQuery = r.URL.RawQuery
				requestToken = r.Header.Get("X-Auth-Token")
				requestBody, _ = ioutil.ReadAll(r.Body)
				w.WriteHeader(http.StatusCreated)
			}))
			defer server.Close()

			destination := &SwiftDestination{SwiftConnection: &swift.Connection{
				StorageUrl: server.URL,
				AuthToken:  "test-token",
			}}
			err := destination.CompleteUpload("container", "object", "deadbeef", []CompletedPart{
				{PartNumber: 1, Tag: "tag-one"},
				{PartNumber: 2, Tag: "tag-two"},
			})
			Expect(err).ShouldNot(HaveOccurred())
			Expect(requestPath).To(Equal("/container/object"))
			Expect(requestQuery).To(Equal("multipart-manifest=put"))
			Expect(requestToken).To(Equal("test-token"))

			var entries []struct {
				Path string `json:"path"`
				Etag string `json:"etag"`
			}
			Expect(json.Unmarshal(requestBody, &entries)).To(Succeed())
			Expect(entries).To(HaveLen(2))
			Expect(entries[0].Path).To(Equal("container/object/deadbeef/00000001"))
			Expect(entries[0].Etag).To(Equal("tag-one"))
			Expect(entries[1].Path).To(Equal("container/object/deadbeef/00000002"))
			Expect(entries[1].Etag).To(Equal("tag-two"))
		})

		It("Fails when the store rejects the manifest", func() {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusBadRequest)
			}))
			defer server.Close()

			destination := &SwiftDestination{SwiftConnection: &swift.Connection{
				StorageUrl: server.URL,
			}}
			err := destination.CompleteUpload("container", "object", "deadbeef", nil)
			Expect(err).Should(HaveOccurred())
		})
	})

	Describe("Authenticate", func() {
		It("Rejects an auth URL without a version suffix", func() {
			_, err := Authenticate("user", "key", "https://identity.example.com", "", "")
			Expect(err).Should(HaveOccurred())
		})
	})
})
