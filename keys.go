package rsmq

func registryKey(ns string) string {
	return ns + "QUEUES"
}

func indexKey(ns, qname string) string {
	return ns + qname
}

func configKey(ns, qname string) string {
	return ns + qname + ":Q"
}

func realtimeChannel(ns, qname string) string {
	// The colon-delimited form is the one the original implementation
	// settled on; an earlier revision shipped "{ns}rt:{qname}" (no leading
	// colon before "rt"), which is not reproduced here.
	return ns + ":rt:" + qname
}
