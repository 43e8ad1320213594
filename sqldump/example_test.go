package sqldump_test

import (
	"fmt"

	"badc0de.net/pkg/go-wikisql/sqldump"
)

// ExampleScanner prints every value of the tuples inserted into `category`.
func ExampleScanner() {
	dump := []byte("CREATE TABLE `category` (`cat_id` int);\n" +
		"INSERT INTO `category` VALUES (1,'Animals',12,3,0),(2,'Rock\\'n\\'roll',4,0,NULL);\n")

	s := sqldump.NewScanner(dump, "category")
	for s.Scan() {
		t := s.Tuple()
		fmt.Printf("tuple %d:", t.Index)
		for _, v := range t.Values {
			fmt.Printf(" %s", v)
		}
		fmt.Println()
	}
	if err := s.Err(); err != nil {
		fmt.Println(err)
	}
	// Output:
	// tuple 0: 1 "Animals" 12 3 0
	// tuple 1: 2 "Rock'n'roll" 4 0 NULL
}
