package cli

var RunFetchForTest = runFetch
