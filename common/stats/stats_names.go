package stats

/*
This file defines all the metrics being collected.   As new metrics are added please follow this pattern.
*/

const (
	/************************* Tree builder metrics **************************/
	/*
		files declared to a tree builder and hashed
	*/
	BuilderFilesAddedCounter = "filesAddedCounter"

	/*
		directories explicitly declared to a tree builder
	*/
	BuilderDirsDeclaredCounter = "dirsDeclaredCounter"

	/*
		directories the builder had to create for a deeper entry
	*/
	BuilderDirsSynthesizedCounter = "dirsSynthesizedCounter"

	/*
		declarations rejected because a file and a directory claimed the same path
	*/
	BuilderTypeConflictCounter = "typeConflictCounter"

	/*
		declarations rejected for any other reason (duplicates, hash/resolve failures, use after build)
	*/
	BuilderFailedAddCounter = "failedAddCounter"

	/*
		time spent in the content hasher per file
	*/
	BuilderHashLatency_ms = "hashLatency_ms"

	/*
		number of entries (files and directories) in the last built snapshot
	*/
	BuilderLastBuildEntriesGauge = "lastBuildEntriesGauge"

	/************************* Hasher metrics **************************/
	/*
		bytes read while hashing file content
	*/
	HasherBytesReadCounter = "bytesReadCounter"

	/*
		memo hasher lookups answered from the cache
	*/
	HasherCacheHitCounter = "cacheHitCounter"

	/*
		memo hasher lookups that went to the underlying hasher
	*/
	HasherCacheMissCounter = "cacheMissCounter"

	/************************* Scanner metrics **************************/
	/*
		scans started
	*/
	ScannerScanCounter = "scanCounter"

	/*
		scans that returned an error
	*/
	ScannerScanErrCounter = "scanErrCounter"

	/*
		entries skipped by an exclude pattern
	*/
	ScannerExcludedCounter = "excludedCounter"

	/*
		symlinks that were not followed (dangling, cycles, or FollowSymlinks off)
	*/
	ScannerSymlinkNotFollowedCounter = "symlinkNotFollowedCounter"

	/*
		devices, sockets and pipes found while scanning; only regular files are snapshotted
	*/
	ScannerIrregularSkippedCounter = "irregularSkippedCounter"

	/*
		time to scan a root and build its snapshot
	*/
	ScannerScanLatency_ms = "scanLatency_ms"
)
