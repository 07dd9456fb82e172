package rsmq

import "fmt"

func addrJoin(host string, port int) string {
	return fmt.Sprintf("%s:%d", host, port)
}
