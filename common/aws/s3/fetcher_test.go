package s3_test

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	"github.com/aws/aws-sdk-go/service/s3/s3manager/s3manageriface"
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	mys3 "github.com/mason-leap-lab/gmbcplot/common/aws/s3"
)

type mockDownloader struct {
	s3manageriface.DownloaderAPI
	objects map[string][]byte
	keys    []string
}

func (d *mockDownloader) DownloadWithContext(_ aws.Context, w io.WriterAt, input *s3.GetObjectInput, _ ...func(*s3manager.Downloader)) (int64, error) {
	d.keys = append(d.keys, *input.Key)
	data, ok := d.objects[*input.Key]
	if !ok {
		return 0, awserr.New(s3.ErrCodeNoSuchKey, "missing", nil)
	}
	n, err := w.WriteAt(data, 0)
	return int64(n), err
}

type mockUploader struct {
	s3manageriface.UploaderAPI
	uploaded map[string][]byte
}

func (u *mockUploader) UploadWithContext(_ aws.Context, input *s3manager.UploadInput, _ ...func(*s3manager.Uploader)) (*s3manager.UploadOutput, error) {
	data, err := io.ReadAll(input.Body)
	if err != nil {
		return nil, err
	}
	u.uploaded[*input.Key] = data
	return &s3manager.UploadOutput{Location: "s3://" + *input.Bucket + "/" + *input.Key}, nil
}

var _ = Describe("Fetcher", func() {
	var (
		dir        string
		downloader *mockDownloader
		uploader   *mockUploader
		fetcher    *mys3.Fetcher
	)

	BeforeEach(func() {
		var err error
		dir, err = os.MkdirTemp("", "fetcher")
		Expect(err).To(BeNil())

		downloader = &mockDownloader{objects: map[string][]byte{
			"exp/spot_ars_rand_seed0.npy": []byte("payload"),
		}}
		uploader = &mockUploader{uploaded: make(map[string][]byte)}
		fetcher = mys3.NewFetcherWithClients("bucket", "exp", downloader, uploader)
	})

	AfterEach(func() {
		os.RemoveAll(dir)
	})

	It("should download missing files", func() {
		dst := filepath.Join(dir, "results", "spot_ars_rand_seed0.npy")
		ok, err := fetcher.Fetch(context.Background(), "spot_ars_rand_seed0.npy", dst)
		Expect(err).To(BeNil())
		Expect(ok).To(BeTrue())

		data, err := os.ReadFile(dst)
		Expect(err).To(BeNil())
		Expect(string(data)).To(Equal("payload"))
	})

	It("should keep existing local files", func() {
		dst := filepath.Join(dir, "spot_ars_rand_seed0.npy")
		Expect(os.WriteFile(dst, []byte("local"), 0644)).To(Succeed())

		ok, err := fetcher.Fetch(context.Background(), "spot_ars_rand_seed0.npy", dst)
		Expect(err).To(BeNil())
		Expect(ok).To(BeTrue())
		Expect(downloader.keys).To(BeEmpty())
	})

	It("should report missing objects without error", func() {
		dst := filepath.Join(dir, "spot_ars_norand_seed0.npy")
		ok, err := fetcher.Fetch(context.Background(), "spot_ars_norand_seed0.npy", dst)
		Expect(err).To(BeNil())
		Expect(ok).To(BeFalse())

		_, err = os.Stat(dst)
		Expect(os.IsNotExist(err)).To(BeTrue())
		entries, _ := os.ReadDir(dir)
		Expect(entries).To(BeEmpty())
	})

	It("should upload files under the prefix", func() {
		src := filepath.Join(dir, "training_seed0.png")
		Expect(os.WriteFile(src, []byte("png"), 0644)).To(Succeed())

		location, err := fetcher.Upload(context.Background(), "plots/run/training_seed0.png", src)
		Expect(err).To(BeNil())
		Expect(location).To(Equal("s3://bucket/exp/plots/run/training_seed0.png"))
		Expect(uploader.uploaded).To(HaveKeyWithValue("exp/plots/run/training_seed0.png", []byte("png")))
	})

	It("should refuse to work without a bucket", func() {
		empty := mys3.NewFetcherWithClients("", "", downloader, uploader)
		_, err := empty.Fetch(context.Background(), "x", filepath.Join(dir, "x"))
		Expect(errors.Is(err, mys3.ErrNoBucket)).To(BeTrue())
	})

	It("should recognize missing objects", func() {
		Expect(mys3.IsNotFound(awserr.New("NotFound", "", nil))).To(BeTrue())
		Expect(mys3.IsNotFound(errors.New("boom"))).To(BeFalse())
		Expect(mys3.IsNotFound(nil)).To(BeFalse())
	})
})
