package constant

// CacheSep separates segments of composite cache keys.
const CacheSep = "#"

const SubmissionDedupPrefix = "submission-dedup-"
