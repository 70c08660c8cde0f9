package publish

import(
	"bytes"
	"context"
	"fmt"
	"io"
	"path"

	"cloud.google.com/go/storage"
	"github.com/pkg/errors"
	"google.golang.org/api/option"
	"k8s.io/klog/v2"
)

// GCSPublisher writes files into a Cloud Storage bucket, under Folder.
type GCSPublisher struct {
	Bucket          string
	Folder          string
	CredentialsFile string // blank == application default credentials
}

func clientOptions(credentialsFile string) []option.ClientOption {
	if credentialsFile == "" { return nil }
	return []option.ClientOption{option.WithCredentialsFile(credentialsFile)}
}

func (p GCSPublisher)ObjectName(filename string) string {
	return path.Join(p.Folder, path.Base(filename))
}

// URI is the gs:// form of the object name, as BigQuery wants it.
func (p GCSPublisher)URI(filename string) string {
	return fmt.Sprintf("gs://%s/%s", p.Bucket, p.ObjectName(filename))
}

// Upload copies the contents of r into the named object, replacing it if it exists.
func (p GCSPublisher)Upload(ctx context.Context, filename, contentType string, r io.Reader) (int64, error) {
	if p.Bucket == "" { return 0, errors.New("gcs: no bucket") }

	client,err := storage.NewClient(ctx, clientOptions(p.CredentialsFile)...)
	if err != nil { return 0, errors.Wrap(err, "gcs: new client") }
	defer client.Close()

	name := p.ObjectName(filename)
	w := client.Bucket(p.Bucket).Object(name).NewWriter(ctx)
	w.ContentType = contentType

	n,err := io.Copy(w, r)
	if err != nil {
		w.Close()
		return n, errors.Wrapf(err, "gcs: writing gs://%s/%s", p.Bucket, name)
	}
	if err := w.Close(); err != nil {
		return n, errors.Wrapf(err, "gcs: closing gs://%s/%s", p.Bucket, name)
	}

	klog.V(1).Infof("gcs: wrote %d bytes to gs://%s/%s", n, p.Bucket, name)
	return n, nil
}

// UploadJSONLines encodes the rows and uploads them, returning the row count.
func (p GCSPublisher)UploadJSONLines(ctx context.Context, filename string, rows interface{}) (int, error) {
	buf := bytes.Buffer{}
	n,err := WriteJSONLines(&buf, rows)
	if err != nil { return 0, err }
	_,err = p.Upload(ctx, filename, "application/json", &buf)
	return n, err
}
