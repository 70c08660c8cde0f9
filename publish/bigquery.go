package publish

import(
	"context"
	"fmt"

	"cloud.google.com/go/bigquery"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

// BigQueryPublisher appends rows into one table. The table is expected to exist;
// its schema can be made from the row type with SchemaFor.
type BigQueryPublisher struct {
	Project         string
	Dataset         string
	Table           string
	CredentialsFile string
}

func (p BigQueryPublisher)String() string {
	return fmt.Sprintf("%s:%s.%s", p.Project, p.Dataset, p.Table)
}

func (p BigQueryPublisher)check() error {
	if p.Project == "" || p.Dataset == "" || p.Table == "" {
		return errors.Errorf("bigquery: incomplete destination %q", p.String())
	}
	return nil
}

// SchemaFor infers a table schema from one of the row types.
func SchemaFor(row interface{}) (bigquery.Schema, error) {
	return bigquery.InferSchema(row)
}

// {{{ p.Load

// Load submits a load job for newline-delimited JSON already in Cloud Storage,
// and waits for it to finish.
func (p BigQueryPublisher)Load(ctx context.Context, gcsURI string) error {
	if err := p.check(); err != nil { return err }

	client,err := bigquery.NewClient(ctx, p.Project, clientOptions(p.CredentialsFile)...)
	if err != nil { return errors.Wrap(err, "bigquery: new client") }
	defer client.Close()

	gcsSrc := bigquery.NewGCSReference(gcsURI)
	gcsSrc.SourceFormat = bigquery.JSON

	loader := client.Dataset(p.Dataset).Table(p.Table).LoaderFrom(gcsSrc)
	loader.CreateDisposition = bigquery.CreateNever
	loader.WriteDisposition = bigquery.WriteAppend

	job,err := loader.Run(ctx)
	if err != nil { return errors.Wrap(err, "bigquery: submitting load job") }

	status,err := job.Wait(ctx)
	if err != nil {
		return errors.Wrap(err, "bigquery: waiting for load job")
	} else if err := status.Err(); err != nil {
		detailedErrStr := ""
		for i,innerErr := range status.Errors {
			detailedErrStr += fmt.Sprintf(" [%2d] %v\n", i, innerErr)
		}
		klog.Errorf("bigquery: load of %s into %s failed: %v\n--\n%s", gcsURI, p, err, detailedErrStr)
		return errors.Errorf("bigquery: load job: %v\n--\n%s", err, detailedErrStr)
	}

	klog.Infof("bigquery: loaded %s into %s (job %s)", gcsURI, p, job.ID())
	return nil
}

// }}}
// {{{ p.Insert

// Insert streams rows straight into the table; fine for small runs.
func (p BigQueryPublisher)Insert(ctx context.Context, rows interface{}) error {
	if err := p.check(); err != nil { return err }

	client,err := bigquery.NewClient(ctx, p.Project, clientOptions(p.CredentialsFile)...)
	if err != nil { return errors.Wrap(err, "bigquery: new client") }
	defer client.Close()

	if err := client.Dataset(p.Dataset).Table(p.Table).Inserter().Put(ctx, rows); err != nil {
		return errors.Wrapf(err, "bigquery: insert into %s", p)
	}
	return nil
}

// }}}

// {{{ -------------------------={ E N D }=----------------------------------

// Local variables:
// folded-file: t
// end:

// }}}
