package blobstore

import "strings"

// JoinKey prefixes name with root for object stores. Unlike path.Join it
// keeps a trailing slash, so "dir/" stays a directory-style list prefix.
func JoinKey(root, name string) string {
	root = strings.Trim(root, "/")
	name = strings.TrimPrefix(name, "/")
	if root == "" {
		return name
	}
	return root + "/" + name
}

// TrimKey strips root from an object key returned by a listing.
func TrimKey(root, key string) string {
	root = strings.Trim(root, "/")
	if root == "" {
		return key
	}
	return strings.TrimPrefix(key, root+"/")
}
