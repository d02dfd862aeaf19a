package domain

type Bucket string

const (
	BucketSkip      Bucket = "skip"
	BucketCopy      Bucket = "copy"
	BucketLocalize  Bucket = "localize"
	BucketTranslate Bucket = "translate"
)

// Buckets holds field keys grouped by translation action.
type Buckets struct {
	Skip      []string
	Copy      []string
	Localize  []string
	Translate []string
}

func (b *Buckets) Add(bucket Bucket, key string) {
	switch bucket {
	case BucketSkip:
		b.Skip = append(b.Skip, key)
	case BucketCopy:
		b.Copy = append(b.Copy, key)
	case BucketLocalize:
		b.Localize = append(b.Localize, key)
	case BucketTranslate:
		b.Translate = append(b.Translate, key)
	}
}

func (b *Buckets) Len() int {
	return len(b.Skip) + len(b.Copy) + len(b.Localize) + len(b.Translate)
}
