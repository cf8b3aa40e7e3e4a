package stats

/*
This file defines all the metrics being collected. As new metrics are added please follow this pattern.
*/

const (
	/****************************** Container metrics ********************************/
	/*
		scope of every metric recorded by a container
	*/
	IceScope = "ice"

	/*
		number of bindings registered (singletons and factories)
	*/
	IceBindCounter = "bindCounter"

	/*
		number of bindings currently reachable from at least one key
	*/
	IceLiveBindingsGauge = "liveBindingsGauge"

	/*
		number of top level resolutions (Resolve and Extract)
	*/
	IceResolveCounter = "resolveCounter"

	/*
		time spent in a top level Resolve, including construction of the graph behind it
	*/
	IceResolveLatency_ms = "resolveLatency_ms"

	/*
		number of resolutions, instantiations and injections that returned an error
	*/
	IceResolveFailureCounter = "resolveFailureCounter"

	/*
		number of objects built by a constructor
	*/
	IceConstructCounter = "constructCounter"

	/*
		number of factory invocations
	*/
	IceFactoryCallCounter = "factoryCallCounter"

	/*
		number of collections built from the registry
	*/
	IceCollectionMaterializeCounter = "collectionMaterializeCounter"

	/*
		number of instances appended to already built collections
	*/
	IceCollectionAppendCounter = "collectionAppendCounter"

	/****************************** Loading metrics **********************************/
	/*
		scope of the loading runner metrics
	*/
	LoadingScope = "loading"

	/*
		number of loading operations started
	*/
	LoadingOperationCounter = "operationCounter"

	/*
		number of loading operations that returned an error
	*/
	LoadingOperationFailureCounter = "operationFailureCounter"

	/*
		time spent in one loading operation
	*/
	LoadingOperationLatency_ms = "operationLatency_ms"

	/*
		number of retries of loading operations wrapped with a retry policy
	*/
	LoadingRetryCounter = "retryCounter"

	/*
		progress of the current loading run, in percent
	*/
	LoadingProgressGauge = "progressGauge"

	/****************************** Admin server metrics *****************************/
	/*
		number of requests served by the admin endpoints
	*/
	AdminRequestCounter = "adminRequestCounter"

	/*
		record the start of the admin server
	*/
	AdminServerStartedGauge = "adminStartGauge"
)
